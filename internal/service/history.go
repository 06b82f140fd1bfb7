package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aarogyavani/companion/internal/store"
	"github.com/aarogyavani/companion/pkg/model"
)

// MaxHistoryItems caps the persisted scan history, most-recent-first.
const MaxHistoryItems = 10

// HistoryService manages the capped prescription scan history
type HistoryService struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(st *store.Store, logger *zap.Logger) *HistoryService {
	return &HistoryService{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// Add prepends a scan result to the history, dropping the oldest entry once
// the cap is reached.
func (s *HistoryService) Add(resp model.AarogyaResponse) model.HistoryItem {
	item := model.HistoryItem{
		ID:        uuid.New().String(),
		Timestamp: s.now().UnixMilli(),
		Data:      resp,
	}

	items := append([]model.HistoryItem{item}, s.List()...)
	if len(items) > MaxHistoryItems {
		items = items[:MaxHistoryItems]
	}
	store.Save(s.store, store.KeyHistory, items)

	s.logger.Info("scan saved to history",
		zap.String("history_id", item.ID),
		zap.Int("medicines", len(resp.StructuredData.Medicines)),
	)

	return item
}

// List returns the history, most recent first.
func (s *HistoryService) List() []model.HistoryItem {
	return store.Load(s.store, store.KeyHistory, []model.HistoryItem{})
}

// Clear deletes the entire history.
func (s *HistoryService) Clear() {
	s.store.Delete(store.KeyHistory)
	s.logger.Info("scan history cleared")
}

// KnownMedicineNames returns the unique medicine names seen across the
// history, newest scan first. Fed back into prescription analysis for
// cross-prescription interaction checks.
func (s *HistoryService) KnownMedicineNames() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, item := range s.List() {
		for _, med := range item.Data.StructuredData.Medicines {
			if _, ok := seen[med.Name]; ok || med.Name == "" {
				continue
			}
			seen[med.Name] = struct{}{}
			names = append(names, med.Name)
		}
	}
	return names
}
