package workers

import (
	"context"
	"east/internal/domain/models"
)

type Job struct {
	Description JobDescriptor
	ExecFn      ExecutionFn
	Args        *models.Text
}

type ExecutionFn func(ctx context.Context, args models.Text) (string, error)

type JobID string
type jobType string
type jobMetadata map[string]string

type JobDescriptor struct {
	ID       JobID
	JobType  jobType
	Metadata jobMetadata
}

type Result struct {
	Value       interface{}
	Err         error
	Description JobDescriptor
}

func (j Job) execute(ctx context.Context) Result {
	value, err := j.ExecFn(ctx, *j.Args)
	if err != nil {
		return Result{
			Err:         err,
			Description: j.Description,
		}
	}

	return Result{
		Value:       value,
		Description: j.Description,
	}
}
