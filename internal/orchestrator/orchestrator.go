// Package orchestrator composes the core: it classifies each inbound
// message, dispatches to a specialist handler, and keeps the session
// transcript current. The orchestrator holds no persistent state of its
// own; it is a coordination layer over the stores.
package orchestrator

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"tandoor/internal/catalog"
	"tandoor/internal/intent"
	"tandoor/internal/kitchen"
	"tandoor/internal/memory"
	"tandoor/internal/models"
	"tandoor/internal/monitoring"
	"tandoor/internal/render"
)

// historyWindow is how much transcript the classifier sees per turn
const historyWindow = 10

// lockStripes sizes the customer lock pool
const lockStripes = 64

// Orchestrator wires the classifier, the kitchen and the stores together
type Orchestrator struct {
	classifier *intent.Classifier
	catalog    *catalog.Catalog
	ledger     kitchen.Ledger
	engine     *kitchen.Engine
	sessions   memory.Sessions
	renderer   render.Renderer
	metrics    *monitoring.Metrics
	log        *logrus.Entry

	// Requests for the same customer are serialized so two concurrent
	// turns cannot race on that customer's order record. The pool is
	// striped by customer id hash, so memory stays constant no matter how
	// many customers are ever seen.
	locks [lockStripes]sync.Mutex
}

// New creates an orchestrator. renderer and metrics may be nil.
func New(cat *catalog.Catalog, ledger kitchen.Ledger, engine *kitchen.Engine, sessions memory.Sessions, renderer render.Renderer, metrics *monitoring.Metrics) *Orchestrator {
	if renderer == nil {
		renderer = render.Template{}
	}
	return &Orchestrator{
		classifier: intent.NewClassifier(cat.Names()),
		catalog:    cat,
		ledger:     ledger,
		engine:     engine,
		sessions:   sessions,
		renderer:   renderer,
		metrics:    metrics,
		log:        logrus.WithField("component", "orchestrator"),
	}
}

// Handle is the sole entry point of the core: one customer message in, one
// structured result out. Internal panics are converted into a generic
// "please try again" response and never reach the caller raw.
func (o *Orchestrator) Handle(ctx context.Context, customerID, text string) (res models.OrchestrationResult) {
	defer func() {
		if r := recover(); r != nil {
			o.log.WithFields(logrus.Fields{"customer": customerID, "panic": r}).
				Error("request handler panicked")
			res = models.OrchestrationResult{
				Success: false,
				Intent:  models.IntentFallback,
				Message: "Something went wrong on our side, please try again.",
				Error:   "internal error",
			}
			// The user message is already on the transcript; record the
			// reply too so the exchange stays paired.
			o.append(customerID, models.Message{
				Role:      models.RoleAssistant,
				Content:   res.Message,
				Timestamp: time.Now(),
				Metadata:  models.MessageMeta{Intent: res.Intent, Step: "recovered", Error: true},
			})
			o.metrics.RequestHandled(string(res.Intent), false)
		}
	}()

	lock := o.customerLock(customerID)
	lock.Lock()
	defer lock.Unlock()

	history := o.sessions.Recent(customerID, historyWindow)
	cls := o.classifier.Classify(text, history)

	o.append(customerID, models.Message{
		Role:      models.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
		Metadata:  models.MessageMeta{Intent: cls.Intent},
	})

	var step string
	switch cls.Intent {
	case models.IntentAskMenu:
		res, step = o.handleMenu(ctx)
	case models.IntentPlaceOrder:
		res, step = o.handlePlaceOrder(ctx, customerID, cls)
	case models.IntentCheckStatus:
		res, step = o.handleStatus(ctx, customerID)
	default:
		res, step = o.handleFallback(ctx)
	}
	res.Intent = cls.Intent
	res.Message = o.renderer.Polish(ctx, res.Message)

	meta := models.MessageMeta{Intent: cls.Intent, Step: step, Error: !res.Success}
	if res.Order != nil {
		meta.OrderID = res.Order.OrderID
	}
	o.append(customerID, models.Message{
		Role:      models.RoleAssistant,
		Content:   res.Message,
		Timestamp: time.Now(),
		Metadata:  meta,
	})

	o.metrics.RequestHandled(string(cls.Intent), res.Success)
	return res
}

func (o *Orchestrator) customerLock(customerID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(customerID))
	return &o.locks[h.Sum32()%lockStripes]
}

func (o *Orchestrator) append(customerID string, msg models.Message) {
	if o.sessions.Append(customerID, msg) {
		o.metrics.SessionAppended()
	}
}
