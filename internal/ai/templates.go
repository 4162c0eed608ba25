package ai

import (
	"fmt"
	"strings"

	"vetscribe-server/internal/models"
)

// The prompts deliberately instruct the model to act as a reformatter, never
// an inferer: sections without source material come back as "Not documented"
// instead of clinically plausible filler.

const transcriptionSystemPrompt = "You are a medical transcription assistant. " +
	"You organize veterinary notes but NEVER add information not present in the input. " +
	"If information is missing, state 'Not documented' rather than inferring details."

const soapTemplate = `You are a medical transcription assistant. Organize the provided veterinary appointment notes into SOAP format.

CRITICAL INSTRUCTIONS:
- ONLY use information explicitly mentioned in the notes below
- DO NOT add medical knowledge, normal ranges, or assumptions
- DO NOT infer anything not directly stated
- If a SOAP section has no information, write "Not documented"
- Better to have incomplete sections than fabricated information

SUBJECTIVE: Only client-reported symptoms, concerns, and history mentioned in notes
OBJECTIVE: Only examination findings, vitals, and observations explicitly stated
ASSESSMENT: Only diagnoses or clinical impressions actually mentioned
PLAN: Only treatments, medications, and recommendations specifically given

Appointment Notes:
%s

Create a factual SOAP note using only the above information:`

const clientSummaryTemplate = `You are a compassionate veterinarian who excels at explaining medical information to pet owners in a clear, caring way.

Based on the appointment information below, create a client-friendly summary that a pet owner can easily understand. Your goal is to:

- Explain what happened during the visit in simple terms
- Clearly describe any findings or concerns
- Explain the treatment plan and why it's important
- Provide clear home care instructions
- Give realistic expectations and follow-up plans
- Be reassuring when appropriate, but honest about concerns
- Use everyday language while being medically accurate

Remember: Pet owners are often worried about their beloved companions. Be empathetic, thorough, and clear. Avoid excessive medical jargon but don't talk down to them.

Appointment Information: %s

Create a caring, clear summary for the pet owner:`

const emailSystemPrompt = "You are writing a follow-up email for a veterinarian. " +
	"Use ONLY information explicitly stated in the appointment notes. " +
	"Never add medical recommendations not mentioned in the original notes."

const emailTemplate = `Create a professional email to %s about %s's veterinary visit.

CRITICAL RULES:
- ONLY include information explicitly mentioned in the appointment notes
- DO NOT add treatments, medications, or recommendations not stated
- DO NOT infer medical advice beyond what was discussed
- If specific treatments weren't mentioned, write "as discussed during the visit"
- Be warm and professional but stick strictly to documented facts

Patient: %s (%s)
Original Notes: %s

Create an email using ONLY the information from the notes above.`

const dentalSystemPrompt = "You are a veterinary dental specialist. " +
	"Extract only explicitly mentioned dental findings. Return a valid JSON object only."

const dentalTemplate = `Analyze the following veterinary dental examination notes and extract specific dental findings.

CRITICAL INSTRUCTIONS:
- ONLY extract findings explicitly mentioned
- Use standard veterinary dental terminology
- Format as tooth number: condition
- Return a JSON object and nothing else

Dental examination notes:
%s

Extract findings in this format:
{"tooth_number": "condition_severity", "tooth_number": "condition_severity"}

Conditions: normal, gingivitis_mild, gingivitis_moderate, gingivitis_severe,
calculus_light, calculus_moderate, calculus_heavy, pocket_4mm, pocket_5mm,
pocket_6mm, fracture, missing, extracted, crown

Example: {"108": "calculus_moderate", "209": "gingivitis_severe", "301": "pocket_5mm"}`

// BuildCaseText prepends the structured signalment fields to the free-text
// notes, forming the single generation input used for both note kinds.
func BuildCaseText(appt models.Appointment, notes string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nPatient: %s\n", appt.PatientName)
	fmt.Fprintf(&b, "Species: %s\n", appt.Species)
	fmt.Fprintf(&b, "Breed: %s\n", appt.Breed)
	fmt.Fprintf(&b, "Age: %s\n", appt.Age)
	fmt.Fprintf(&b, "Sex: %s\n", appt.Sex)
	fmt.Fprintf(&b, "Weight: %s\n", appt.Weight)
	fmt.Fprintf(&b, "Client: %s\n", appt.ClientName)
	fmt.Fprintf(&b, "Appointment Type: %s\n", appt.AppointmentType)
	fmt.Fprintf(&b, "\nAppointment Notes:\n%s", notes)
	return b.String()
}
