package jobs

import (
	"context"
	"log"
	"time"

	"Backend-Feedback/src/models"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPurgeDelay leaves in-flight submissions time to land before the sweep.
const DefaultPurgeDelay = time.Minute

// Enqueuer is the part of *asynq.Client the dispatcher needs.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Dispatcher turns form lifecycle events into background tasks.
// Without a client every event is dropped with a log line.
type Dispatcher struct {
	client     Enqueuer
	purgeDelay time.Duration
}

func NewDispatcher(client *asynq.Client) *Dispatcher {
	d := &Dispatcher{purgeDelay: DefaultPurgeDelay}
	if client != nil {
		d.client = client
	}
	return d
}

func (d *Dispatcher) WithEnqueuer(e Enqueuer) *Dispatcher {
	d.client = e
	return d
}

func (d *Dispatcher) FormReviewed(_ context.Context, form *models.Form) {
	if d.client == nil {
		log.Printf("⚠️ Asynq not available, review mail for form %s skipped", form.ID.Hex())
		return
	}
	task, err := NewReviewNotifyTask(form.ID.Hex())
	if err != nil {
		log.Println("❌ Failed to build review task:", err)
		return
	}
	if _, err := d.client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		log.Println("❌ Failed to enqueue review task:", err)
	}
}

func (d *Dispatcher) FormDeleted(_ context.Context, formID primitive.ObjectID) {
	if d.client == nil {
		return
	}
	task, err := NewPurgeResponsesTask(formID.Hex())
	if err != nil {
		log.Println("❌ Failed to build purge task:", err)
		return
	}
	_, err = d.client.Enqueue(task,
		asynq.ProcessIn(d.purgeDelay),
		asynq.TaskID(PurgeTaskID(formID.Hex())),
	)
	if err != nil {
		log.Println("❌ Failed to enqueue purge task:", err)
		return
	}
	log.Printf("✅ Purge for form %s scheduled in %s", formID.Hex(), d.purgeDelay)
}
