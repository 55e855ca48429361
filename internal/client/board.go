package client

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"hrops-gateway/internal/derive"
	"hrops-gateway/internal/models"
	"hrops-gateway/internal/upstream"
)

// DerivedTask is a cached task with its computed fields.
type DerivedTask struct {
	models.Task
	Derived derive.Fields
}

// Board talks to the task proxy at /api/gs.
type Board struct {
	tasks *collection[models.Task]
}

// NewBoard creates a Board for the gateway at baseURL. A nil doer uses http.DefaultClient.
func NewBoard(baseURL string, doer upstream.Doer) *Board {
	return &Board{tasks: newCollection[models.Task](baseURL, "/api/gs", "list", doer)}
}

// Tasks returns the last good list. fresh is false once a mutation made it stale.
func (b *Board) Tasks() (tasks []models.Task, fresh bool) {
	return b.tasks.current()
}

// Refresh re-lists the tasks. On failure the previous list is kept and the error returned.
func (b *Board) Refresh(ctx context.Context) ([]models.Task, error) {
	return b.tasks.refresh(ctx)
}

// Create returns the id assigned by the store. The task is checked and defaulted before
// anything is sent.
func (b *Board) Create(ctx context.Context, task models.Task) (string, error) {
	task, err := task.PrepareForCreate()
	if err != nil {
		return "", goerr.Wrap(err, "task rejected before submission")
	}
	env, err := b.tasks.mutate(ctx, "create", "", task)
	return env.ID, err
}

// Update sends only the given fields for the task id.
func (b *Board) Update(ctx context.Context, id string, fields map[string]any) error {
	_, err := b.tasks.mutate(ctx, "update", id, fields)
	return err
}

func (b *Board) Delete(ctx context.Context, id string) error {
	_, err := b.tasks.mutate(ctx, "delete", id, nil)
	return err
}

// Derived runs the calculator over the cached list against now.
func (b *Board) Derived(now time.Time) []DerivedTask {
	tasks, _ := b.tasks.current()
	out := make([]DerivedTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, DerivedTask{Task: t, Derived: derive.Derive(t, now)})
	}
	return out
}
