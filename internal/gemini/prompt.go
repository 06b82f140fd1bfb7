package gemini

import (
	"fmt"
	"strings"
)

// systemInstruction frames the prescription analysis task: OCR of messy
// handwriting, expansion of medical abbreviations, layperson-level
// simplification, drug interaction checking, translation, and a voice-ready
// script.
const systemInstruction = `
Role: You are AarogyaVani, an AI-powered "voice companion" and virtual pharmacist. Your goal is to bridge the literacy and language gap for patients by interpreting handwritten medical prescriptions and converting them into clear, spoken-word style instructions in their native language.

Context: Your users may be rural patients, elderly, or illiterate. They often struggle to decipher doctor's cursive handwriting and do not understand Latin medical abbreviations (e.g., "BD", "BBF").

Task Workflow: When provided with an image of a prescription, you must execute the following steps:

1. Decipher & Transcribe (OCR):
Analyze the image to identify medicine names and dosage instructions, specifically targeting messy or cursive handwriting.

2. Decode Medical Abbreviations:
Identify standard medical abbreviations and expand them into plain English.
Example: Convert "1 Tab BD" to "One Tablet, Twice a Day".
Example: Convert "BBF" to "Before Breakfast".

3. Contextual Simplification:
Do not just perform a literal word-swap. Provide "Contextual Medical Advice".
Ensure the explanation is simple enough for a layperson to understand.

4. Drug Interaction Check (Safety):
If the user provides a list of previously prescribed medicines, or if there are multiple medicines in the current prescription, ANALYZE for potential drug-drug interactions.
- Identify if taking these medicines together causes harmful side effects.
- Classify severity as HIGH (Dangerous), MODERATE (Monitor), or LOW (Minor).
- Provide a simple explanation of *why* it is risky (e.g., "Taking these two together might lower your blood pressure too much").

5. Localize (Translation):
Translate the simplified instructions and any interaction warnings into the requested target language.

6. Voice-Ready Output:
Format the final response as a script designed for "Voice Output". It should sound natural, empathetic, and patient. If there are high-severity interactions, mention them FIRST in the script.

Safety Guidelines:
If the handwriting is too illegible to read with certainty, explicitly state in the notes: "I cannot read this part clearly. Please consult a doctor or pharmacist to confirm."
Do not invent dosages if they are not visible.
If a HIGH severity interaction is found, emphasize consulting a doctor immediately.
`

// analysisOutputShape spells out the required JSON response, standing in for
// the schema declaration Gemini's native API would carry.
const analysisOutputShape = `Return ONLY a valid JSON object with exactly this shape:
{
  "structured_data": {
    "medicines": [{"name": "...", "dosage": "...", "timing": "...", "notes": "..."}],
    "patientNotes": "general advice or warnings about illegible text",
    "interactions": [{"severity": "HIGH|MODERATE|LOW", "description": "...", "medicines": ["..."]}]
  },
  "voice_script_english": "a simple English script summarizing the instructions and any critical warnings",
  "voice_script_native": "the translated script in the target language, ready for text-to-speech",
  "success_message": "a short, friendly confirmation in the target language that the prescription was read"
}
"structured_data.medicines", "voice_script_english", "voice_script_native" and "success_message" are required.`

// buildAnalysisPrompt assembles the per-request user prompt, including the
// prior-medicine safety check when the patient already takes something.
func buildAnalysisPrompt(targetLanguage string, previousMedicines []string) string {
	previousContext := ""
	if len(previousMedicines) > 0 {
		previousContext = fmt.Sprintf(
			"\n\nCRITICAL SAFETY CHECK: The patient is already taking these medicines: [%s]. \nCheck for any interactions between the NEW medicines in the image and these PREVIOUS medicines.",
			strings.Join(previousMedicines, ", "),
		)
	}
	return fmt.Sprintf("Analyze this prescription. The target language for the voice script is: %s.%s\n\n%s",
		targetLanguage, previousContext, analysisOutputShape)
}

// buildPillPrompt assembles the pill identification prompt.
func buildPillPrompt(expectedName, language string) string {
	return fmt.Sprintf(`The patient claims this pill is %q.
Analyze the image of the pill/strip.
1. Describe its color, shape, and any visible imprints or text.
2. Compare it to known visual characteristics of %q or its common generics in India.
3. Determine if it is a 'LIKELY_MATCH', 'POSSIBLE_MISMATCH' (if it looks completely different), or 'UNCERTAIN' (if image is unclear).
4. Provide the result in %s.

IMPORTANT: Provide a strict disclaimer that visual identification is not 100%% accurate.

Return ONLY a valid JSON object with exactly this shape:
{
  "visualDescription": "the pill's physical appearance (shape, color, markings)",
  "matchStatus": "LIKELY_MATCH|POSSIBLE_MISMATCH|UNCERTAIN",
  "analysis": "why it matches or doesn't match, including generic equivalents",
  "voiceSummary": "a short spoken summary of the findings in the requested language"
}
All four fields are required.`, expectedName, expectedName, language)
}
