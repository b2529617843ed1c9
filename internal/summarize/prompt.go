package summarize

import (
	"fmt"
)

const promptInstructions = `You are given a preview of a healthcare price list document from a Nigerian facility. Return ONLY valid JSON with this schema:
{
  "facilityName": string (the REAL facility name, e.g. "Lagos State University Teaching Hospital"; never a document title like "Price List" or "Tariff". When the name is not stated explicitly, infer it from the document title rows, the column headers, or the source file name; empty string only if none of those identify a real facility),
  "currency": string (ISO code, default "NGN"),
  "items": [
    {
      "description": string (the service or procedure as written),
      "price": number (numeric amount only, no currency symbols or commas),
      "unit": string (one of: per_day, per_hour, per_week, per_month; omit for one-off prices),
      "tier": string (one of: adult, paediatric, executive, private, general, free; omit if not stated),
      "category": string (ward, department, or section heading the item sits under; omit if none),
      "notes": string (qualifiers like "depending on distance"; omit if none)
    }
  ]
}
Rules:
- One item per priced service. A service with separate adult and paediatric prices becomes two items.
- "Free" means price 0 with tier "free".
- Ignore page numbers, headers repeated mid-document, and blank rows.
- Do not invent services or prices that are not in the preview.`

func buildPrompt(sourceFile, preview string) string {
	return fmt.Sprintf("%s\n\nSource file: %s\n\nDocument preview:\n%s\n", promptInstructions, sourceFile, preview)
}
