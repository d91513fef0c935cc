package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of a render job. Only pending is written
// by this service; the rest belong to the downstream worker.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// JobPayload is the validated and moderated greeting as stored for the
// renderer, with the email already reassembled.
type JobPayload struct {
	SenderName     string `json:"nombre" dynamodbav:"nombre"`
	Relationship   string `json:"parentesco" dynamodbav:"parentesco"`
	Email          string `json:"email" dynamodbav:"email"`
	Province       string `json:"provincia" dynamodbav:"provincia"`
	ChildName      string `json:"nombreNino,omitempty" dynamodbav:"nombre_nino,omitempty"`
	WhatHappened   string `json:"queHizo" dynamodbav:"que_hizo"`
	SpecialMemory  string `json:"recuerdoEspecial,omitempty" dynamodbav:"recuerdo_especial,omitempty"`
	MagicNightWish string `json:"pedidoNocheMagica,omitempty" dynamodbav:"pedido_noche_magica,omitempty"`
}

// Job is one accepted greeting waiting for (or going through) rendering.
// The JSON layout is what the render worker reads from the store.
type Job struct {
	ID        string     `json:"videoId" dynamodbav:"job_id"`
	Status    JobStatus  `json:"status" dynamodbav:"status"`
	Data      JobPayload `json:"data" dynamodbav:"data"`
	CreatedAt time.Time  `json:"createdAt" dynamodbav:"created_at"`

	// Written by the render worker as the job progresses (epoch seconds).
	UpdatedAt   float64 `json:"updatedAt,omitempty" dynamodbav:"updated_at,omitempty"`
	VideoURL    string  `json:"videoUrl,omitempty" dynamodbav:"video_url,omitempty"`
	CompletedAt float64 `json:"completedAt,omitempty" dynamodbav:"completed_at,omitempty"`
	Error       string  `json:"error,omitempty" dynamodbav:"error,omitempty"`
	FailedAt    float64 `json:"failedAt,omitempty" dynamodbav:"failed_at,omitempty"`
}

// NewJob builds a pending job with a fresh id from an accepted request.
func NewJob(req GreetingRequest, now time.Time) *Job {
	return &Job{
		ID:     GenerateJobID(),
		Status: JobStatusPending,
		Data: JobPayload{
			SenderName:     strings.TrimSpace(req.SenderName),
			Relationship:   strings.TrimSpace(req.Relationship),
			Email:          req.Email(),
			Province:       req.Province,
			ChildName:      strings.TrimSpace(req.ChildName),
			WhatHappened:   strings.TrimSpace(req.WhatHappened),
			SpecialMemory:  strings.TrimSpace(req.SpecialMemory),
			MagicNightWish: strings.TrimSpace(req.MagicNightWish),
		},
		CreatedAt: now.UTC(),
	}
}

// GenerateJobID returns a random, collision-resistant id. It never derives
// from user content.
func GenerateJobID() string {
	return uuid.New().String()
}
