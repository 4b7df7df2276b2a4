package memory

import (
	"github.com/cvforge/chronicle/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	timeline *timelineRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		timeline: newTimelineRepository(),
	}
}

func (m *Memory) Timeline() interfaces.TimelineRepository {
	return m.timeline
}

func (m *Memory) Close() error {
	return nil
}
