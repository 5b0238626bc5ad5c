// Package intent classifies inbound customer messages into one of the four
// routing intents. Classification is an ordered rule list over the lowered
// text, not a statistical model: the rule order is part of the contract
// because it decides routing (a message containing both a menu keyword and
// a dish name always routes to the menu).
package intent

import (
	"strconv"
	"strings"
	"unicode"

	"tandoor/internal/models"
)

// Confidence levels reported per rule. Fixed values, not probabilities.
const (
	confidenceMenu     = 0.9
	confidencePlace    = 0.8
	confidenceStatus   = 0.75
	confidenceFallback = 0.1
)

// UnknownDish is the extracted dish name when no catalog dish matched
const UnknownDish = "unknown"

// Classification is the classifier output: routing intent, rule confidence
// and the slots extracted from the text.
type Classification struct {
	Intent     models.Intent `json:"intent"`
	Confidence float64       `json:"confidence"`
	DishName   string        `json:"dishName,omitempty"`
	Quantity   int           `json:"quantity,omitempty"`
}

// Classifier holds the fixed vocabularies. The dish name list keeps the
// catalog's registration order; first match wins during extraction.
type Classifier struct {
	dishNames      []string
	orderTriggers  []string
	statusTriggers []string
}

// NewClassifier creates a classifier aware of the given dish names
func NewClassifier(dishNames []string) *Classifier {
	return &Classifier{
		dishNames:      dishNames,
		orderTriggers:  []string{"order", "want", "take", "i'll have"},
		statusTriggers: []string{"status", "where", "ready", "done"},
	}
}

// Classify maps one message to an intent. history is the recent transcript
// supplied for context; the current rule set is purely lexical, so for a
// fixed text the result is identical on every call.
func (c *Classifier) Classify(text string, history []models.Message) Classification {
	_ = history
	lowered := strings.ToLower(text)

	// Rule 1: menu inquiry
	if strings.Contains(lowered, "menu") ||
		(strings.Contains(lowered, "what") && strings.Contains(lowered, "serve")) {
		return Classification{Intent: models.IntentAskMenu, Confidence: confidenceMenu}
	}

	// Rule 2: order placement, triggered by order vocabulary or any dish
	// mention. "Where is my order?" names an existing order rather than
	// placing one: without a dish, a status keyword wins over the trigger.
	dish, dishMentioned := c.extractDish(lowered)
	if c.containsAny(lowered, c.orderTriggers) || dishMentioned {
		if !dishMentioned && c.containsAny(lowered, c.statusTriggers) {
			return Classification{Intent: models.IntentCheckStatus, Confidence: confidenceStatus}
		}
		name := UnknownDish
		if dishMentioned {
			name = dish
		}
		return Classification{
			Intent:     models.IntentPlaceOrder,
			Confidence: confidencePlace,
			DishName:   name,
			Quantity:   extractQuantity(lowered),
		}
	}

	// Rule 3: status check
	if c.containsAny(lowered, c.statusTriggers) {
		return Classification{Intent: models.IntentCheckStatus, Confidence: confidenceStatus}
	}

	return Classification{Intent: models.IntentFallback, Confidence: confidenceFallback}
}

func (c *Classifier) containsAny(lowered string, vocab []string) bool {
	for _, w := range vocab {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}

// extractDish scans the known dish names in order. A full case-insensitive
// substring match wins first; failing that, any single word of a dish name
// appearing in the text counts, still first dish wins.
func (c *Classifier) extractDish(lowered string) (string, bool) {
	for _, name := range c.dishNames {
		if strings.Contains(lowered, strings.ToLower(name)) {
			return name, true
		}
	}
	for _, name := range c.dishNames {
		for _, token := range strings.Fields(strings.ToLower(name)) {
			if strings.Contains(lowered, token) {
				return name, true
			}
		}
	}
	return "", false
}

// extractQuantity pulls the first standalone integer out of the text,
// defaulting to 1. "I want 2 Garlic Naan" -> 2.
func extractQuantity(lowered string) int {
	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsDigit(r) && !unicode.IsLetter(r)
	})
	for _, f := range fields {
		if n, err := strconv.Atoi(f); err == nil && n > 0 {
			return n
		}
	}
	return 1
}
