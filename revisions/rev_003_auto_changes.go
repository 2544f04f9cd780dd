// Auto-generated revision capturing manual edits to the prompt document
// on 2026-07-08 14:32:51.

package revisions

import "github.com/teranos/promptrev/prompt"

func init() {
	catalog = append(catalog, entry{
		id:          "003_auto_changes",
		description: "Auto-generated from manual changes",
		transform:   migrate003AutoChanges,
	})
}

func migrate003AutoChanges(doc *prompt.Document) error {
	// Add new prompts
	doc.Set("DATE_GREETING", "Today is {{date:format=%B %d, %Y}}. How can I help you?")
	doc.Set("LUCKY_NUMBER", "Your lucky number today is {{number:min=1,max=100}}.")
	doc.Set("MOOD_SUGGESTION", "I notice you're feeling down. Have you tried {{choice:meditation,deep breathing,going for a walk,listening to music}} today?")
	doc.Set("PERSONALIZED_GREETING", "{{text:Hello {name}! Welcome to {service}.,name=valued customer,service=our AI assistant}}")

	return nil
}
