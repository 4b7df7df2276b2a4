package model

import (
	"time"

	"github.com/cvforge/chronicle/pkg/domain/types"
)

// DataQuality is the quality annotation stored alongside a timeline document
type DataQuality struct {
	EventsCount       int    `json:"eventsCount" firestore:"eventsCount"`
	ValidationPassed  bool   `json:"validationPassed" firestore:"validationPassed"`
	CleaningVersion   string `json:"cleaningVersion" firestore:"cleaningVersion"`
	WarningCount      int    `json:"warningCount,omitempty" firestore:"warningCount,omitempty"`
	IsFallback        bool   `json:"isFallback,omitempty" firestore:"isFallback,omitempty"`
	IsMinimalFallback bool   `json:"isMinimalFallback,omitempty" firestore:"isMinimalFallback,omitempty"`
}

// TimelineRecord is the persisted sub-document for one job's timeline
type TimelineRecord struct {
	Enabled     bool                 `json:"enabled" firestore:"enabled"`
	Status      types.TimelineStatus `json:"status" firestore:"status"`
	Data        map[string]any       `json:"data" firestore:"data"`
	Error       string               `json:"error,omitempty" firestore:"error,omitempty"`
	GeneratedAt time.Time            `json:"generatedAt" firestore:"generatedAt,serverTimestamp"`
	DataQuality DataQuality          `json:"dataQuality" firestore:"dataQuality"`
}
