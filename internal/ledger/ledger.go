// Package ledger answers ingredient feasibility questions for the kitchen.
// The ledger itself is read-mostly; restock and consumption events arrive
// from outside the core.
package ledger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"

	"tandoor/internal/models"
)

// Source supplies the ingredient records behind the ledger. The gorm-backed
// source is used in production; the static source backs tests and demo runs.
type Source interface {
	Ingredients() ([]models.Ingredient, error)
	Debit(name string, qty float64) error
}

// Ledger checks dish requirements against current stock. All checks run
// under one mutex so a check-and-debit pair cannot interleave with another
// customer's debit.
type Ledger struct {
	mu     sync.Mutex
	source Source
	log    *logrus.Entry
}

// New creates a ledger over the given ingredient source
func New(source Source) *Ledger {
	return &Ledger{
		source: source,
		log:    logrus.WithField("component", "ledger"),
	}
}

// Matches reports whether a stocked ingredient satisfies a requirement name.
// Matching is fuzzy in both directions ("Chicken" satisfies "Chicken Breast"
// and vice versa) to tolerate naming variants between menu and pantry.
func Matches(stocked, required string) bool {
	a := strings.ToLower(strings.TrimSpace(stocked))
	b := strings.ToLower(strings.TrimSpace(required))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// CheckDish verifies that every ingredient required for servings portions of
// the dish is stocked in sufficient quantity. It returns the exact list of
// under-supplied ingredients; an empty list means the dish is feasible.
// A non-nil error means the ledger itself was unreachable, not that the
// dish is infeasible.
func (l *Ledger) CheckDish(dish models.Dish, servings int) ([]models.MissingIngredient, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.checkLocked(dish, servings)
}

func (l *Ledger) checkLocked(dish models.Dish, servings int) ([]models.MissingIngredient, error) {
	if servings <= 0 {
		servings = 1
	}

	stock, err := l.source.Ingredients()
	if err != nil {
		return nil, fmt.Errorf("ledger unavailable: %w", err)
	}

	var missing []models.MissingIngredient
	for name, perServing := range dish.RequiredIngredients {
		required := perServing * float64(servings)
		available := 0.0
		for _, ing := range stock {
			if Matches(ing.Name, name) {
				available = ing.Quantity
				break
			}
		}
		if available < required {
			missing = append(missing, models.MissingIngredient{
				Name:      name,
				Required:  required,
				Available: available,
			})
		}
	}
	return missing, nil
}

// CheckAndDebit runs the feasibility gate and, when it passes, debits the
// matched stock in the same critical section so two concurrent orders cannot
// both spend the same ingredients.
func (l *Ledger) CheckAndDebit(dish models.Dish, servings int) ([]models.MissingIngredient, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	missing, err := l.checkLocked(dish, servings)
	if err != nil || len(missing) > 0 {
		return missing, err
	}

	if servings <= 0 {
		servings = 1
	}
	stock, err := l.source.Ingredients()
	if err != nil {
		return nil, fmt.Errorf("ledger unavailable: %w", err)
	}
	for name, perServing := range dish.RequiredIngredients {
		required := perServing * float64(servings)
		for _, ing := range stock {
			if Matches(ing.Name, name) {
				if err := l.source.Debit(ing.Name, required); err != nil {
					return nil, fmt.Errorf("debit %s: %w", ing.Name, err)
				}
				break
			}
		}
	}
	return nil, nil
}

// Snapshot returns the current ledger contents
func (l *Ledger) Snapshot() ([]models.Ingredient, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.source.Ingredients()
}

// DBSource reads ingredients from the database
type DBSource struct {
	db *gorm.DB
}

// NewDBSource creates a database-backed ingredient source
func NewDBSource(db *gorm.DB) *DBSource {
	return &DBSource{db: db}
}

// Ingredients returns all ledger rows
func (s *DBSource) Ingredients() ([]models.Ingredient, error) {
	var out []models.Ingredient
	if err := s.db.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Debit decrements the stocked quantity of one ingredient, flooring at zero
func (s *DBSource) Debit(name string, qty float64) error {
	var ing models.Ingredient
	if err := s.db.Where("name = ?", name).First(&ing).Error; err != nil {
		return err
	}
	ing.Quantity -= qty
	if ing.Quantity < 0 {
		ing.Quantity = 0
	}
	return s.db.Save(&ing).Error
}

// StaticSource is an in-memory ingredient source keyed by name
type StaticSource struct {
	mu    sync.Mutex
	stock map[string]*models.Ingredient
	order []string
	// Fail makes every call return an error, simulating an unreachable store
	Fail bool
}

// NewStaticSource creates an in-memory source from name -> quantity pairs
func NewStaticSource(quantities map[string]float64) *StaticSource {
	s := &StaticSource{stock: make(map[string]*models.Ingredient)}
	for name, qty := range quantities {
		s.stock[name] = &models.Ingredient{Name: name, Quantity: qty, Unit: "g", Available: qty > 0}
		s.order = append(s.order, name)
	}
	return s
}

// Ingredients returns the current in-memory stock
func (s *StaticSource) Ingredients() ([]models.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return nil, fmt.Errorf("ingredient source offline")
	}
	out := make([]models.Ingredient, 0, len(s.stock))
	for _, name := range s.order {
		out = append(out, *s.stock[name])
	}
	return out, nil
}

// Debit decrements an in-memory quantity, flooring at zero
func (s *StaticSource) Debit(name string, qty float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return fmt.Errorf("ingredient source offline")
	}
	ing, ok := s.stock[name]
	if !ok {
		return fmt.Errorf("unknown ingredient %q", name)
	}
	ing.Quantity -= qty
	if ing.Quantity < 0 {
		ing.Quantity = 0
	}
	ing.Available = ing.Quantity > 0
	return nil
}
