package mailer

import (
	"context"
	"fmt"
)

// DeliveryJob sends one email through Sender when run by the worker dispatcher.
type DeliveryJob struct {
	JobID  string
	Email  Email
	Sender Sender
}

// ID returns the unique identifier of the job.
func (j *DeliveryJob) ID() string {
	return j.JobID
}

// Execute performs the delivery.
func (j *DeliveryJob) Execute(ctx context.Context) error {
	if err := j.Sender.Send(ctx, j.Email); err != nil {
		return fmt.Errorf("delivery job %s: %w", j.JobID, err)
	}
	return nil
}
