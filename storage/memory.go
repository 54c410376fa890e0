package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"vidsummarize.online/backend/model"
)

// Memory is an in-memory store used in tests.
type Memory struct {
	mu          sync.RWMutex
	summaries   map[model.VideoID]model.SummaryRecord
	jobs        map[model.VideoID]model.JobRecord
	captions    map[model.VideoID]string
	transcripts map[model.VideoID]string
	audio       map[model.VideoID][]byte
}

func NewMemory() *Memory {
	return &Memory{
		summaries:   map[model.VideoID]model.SummaryRecord{},
		jobs:        map[model.VideoID]model.JobRecord{},
		captions:    map[model.VideoID]string{},
		transcripts: map[model.VideoID]string{},
		audio:       map[model.VideoID][]byte{},
	}
}

func (m *Memory) FindSummary(_ context.Context, id model.VideoID) (model.SummaryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.summaries[id]
	if !ok {
		return model.SummaryRecord{}, ErrNotFound
	}
	return rec, nil
}

func (m *Memory) SaveSummary(_ context.Context, rec model.SummaryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.summaries[rec.VideoID] = rec
	return nil
}

func (m *Memory) FindJob(_ context.Context, id model.VideoID) (model.JobRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.jobs[id]
	if !ok {
		return model.JobRecord{}, ErrNotFound
	}
	return rec, nil
}

func (m *Memory) SaveJob(_ context.Context, rec model.JobRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobs[rec.VideoID] = rec
	return nil
}

func (m *Memory) SaveCaptions(_ context.Context, id model.VideoID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.captions[id] = text
	return nil
}

func (m *Memory) SaveTranscript(_ context.Context, id model.VideoID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.transcripts[id] = text
	return nil
}

func (m *Memory) UploadAudio(_ context.Context, id model.VideoID, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.audio[id] = data
	return fmt.Sprintf("s3://memory/%s/audio.mp4", id), nil
}

func (m *Memory) Captions(id model.VideoID) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	text, ok := m.captions[id]
	return text, ok
}

func (m *Memory) Transcript(id model.VideoID) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	text, ok := m.transcripts[id]
	return text, ok
}
