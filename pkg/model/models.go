package model

// DoseStatus records whether a scheduled dose was taken or skipped
type DoseStatus string

const (
	DoseTaken   DoseStatus = "taken"
	DoseSkipped DoseStatus = "skipped"
)

// Valid reports whether the status is one of the known values
func (s DoseStatus) Valid() bool {
	return s == DoseTaken || s == DoseSkipped
}

// Medication represents a medication with its daily reminder times.
// Records are replaced wholesale on edit, never mutated in place.
type Medication struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Dosage   string   `json:"dosage"`
	Times    []string `json:"times"` // HH:MM wall-clock strings, unique, ordered
	Notes    *string  `json:"notes,omitempty"`
	Language string   `json:"lang,omitempty"` // BCP 47 tag for spoken reminders, e.g. "hi-IN"
}

// MedLog is a dose log entry. MedicationID is a weak reference: the log stays
// valid after its medication is deleted, which is why the name is denormalized.
type MedLog struct {
	ID             string     `json:"id"`
	MedicationID   string     `json:"medicationId"`
	MedicationName string     `json:"medicationName"`
	Date           string     `json:"date"` // YYYY-MM-DD
	Time           string     `json:"time"` // HH:MM, one of the medication's configured times
	Status         DoseStatus `json:"status"`
	LoggedAt       int64      `json:"loggedAt"` // unix milliseconds, used for recency sorting
}

// Appointment represents a scheduled doctor visit
type Appointment struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Doctor   *string `json:"doctor,omitempty"`
	Location *string `json:"location,omitempty"`
	Date     string  `json:"date"` // YYYY-MM-DD
	Time     string  `json:"time"` // HH:MM
	Notes    *string `json:"notes,omitempty"`
}

// EmergencyContact is one of at most three SOS contacts.
// Insertion order is significant: index 0 is the primary contact.
type EmergencyContact struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Relation *string `json:"relation,omitempty"`
}

// Severity classifies a drug-drug interaction
type Severity string

const (
	SeverityHigh     Severity = "HIGH"
	SeverityModerate Severity = "MODERATE"
	SeverityLow      Severity = "LOW"
)

// Valid reports whether the severity is one of the known values
func (s Severity) Valid() bool {
	return s == SeverityHigh || s == SeverityModerate || s == SeverityLow
}

// Medicine is a single medicine read from a prescription image
type Medicine struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
	Timing string `json:"timing"`
	Notes  string `json:"notes,omitempty"`
}

// Interaction describes a potential drug-drug interaction found by the model
type Interaction struct {
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Medicines   []string `json:"medicines"`
}

// StructuredData is the machine-readable portion of an analysis response
type StructuredData struct {
	Medicines    []Medicine    `json:"medicines"`
	PatientNotes string        `json:"patientNotes,omitempty"`
	Interactions []Interaction `json:"interactions,omitempty"`
}

// AarogyaResponse is the full result of a prescription analysis.
// Immutable once received from the model.
type AarogyaResponse struct {
	StructuredData     StructuredData `json:"structured_data"`
	VoiceScriptEnglish string         `json:"voice_script_english"`
	VoiceScriptNative  string         `json:"voice_script_native"`
	SuccessMessage     string         `json:"success_message,omitempty"`
	Language           string         `json:"language"`
}

// MatchStatus classifies a pill identification result
type MatchStatus string

const (
	MatchLikely    MatchStatus = "LIKELY_MATCH"
	MatchMismatch  MatchStatus = "POSSIBLE_MISMATCH"
	MatchUncertain MatchStatus = "UNCERTAIN"
)

// Valid reports whether the match status is one of the known values
func (s MatchStatus) Valid() bool {
	return s == MatchLikely || s == MatchMismatch || s == MatchUncertain
}

// PillAnalysisResult is the result of a single-pill visual comparison
type PillAnalysisResult struct {
	VisualDescription string      `json:"visualDescription"`
	MatchStatus       MatchStatus `json:"matchStatus"`
	Analysis          string      `json:"analysis"`
	VoiceSummary      string      `json:"voiceSummary"`
}

// HistoryItem is one entry in the capped scan history
type HistoryItem struct {
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"` // unix milliseconds
	Data      AarogyaResponse `json:"data"`
}

// LanguageOption describes a supported output language
type LanguageOption struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
}

// SupportedLanguages lists the output languages offered to the user
var SupportedLanguages = []LanguageOption{
	{Code: "hi", Name: "Hindi", NativeName: "हिंदी"},
	{Code: "kn", Name: "Kannada", NativeName: "ಕನ್ನಡ"},
	{Code: "ta", Name: "Tamil", NativeName: "தமிழ்"},
	{Code: "te", Name: "Telugu", NativeName: "తెలుగు"},
	{Code: "ml", Name: "Malayalam", NativeName: "മലയാളം"},
	{Code: "mr", Name: "Marathi", NativeName: "मराठी"},
	{Code: "bn", Name: "Bengali", NativeName: "বাংলা"},
	{Code: "en", Name: "English", NativeName: "English"},
}

// TTSLocale maps a language code to the locale tag used for speech synthesis
var TTSLocale = map[string]string{
	"hi": "hi-IN",
	"kn": "kn-IN",
	"ta": "ta-IN",
	"te": "te-IN",
	"ml": "ml-IN",
	"mr": "mr-IN",
	"bn": "bn-IN",
	"en": "en-IN",
}
