// Package form models the client side of profile submission: field state,
// repeated sections, image selection and the submit/reset cycle.
package form

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"profilecard/internal/models"
	"profilecard/internal/validation"
	"profilecard/pkg/client"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrSubmitInProgress is returned when Submit is called while another submit is in flight.
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	ErrUnknownSection   = errors.New("unknown section")
	ErrUnknownEntry     = errors.New("unknown entry")
)

// Phase is the submission state of a form.
type Phase int

const (
	Editing Phase = iota
	Submitting
)

func (p Phase) String() string {
	if p == Submitting {
		return "submitting"
	}
	return "editing"
}

// Submitter persists a payload, returning the stored record.
// *client.Client satisfies it.
type Submitter interface {
	Create(ctx context.Context, kind models.Kind, payload map[string]any) (map[string]any, error)
}

// Form holds the in-progress input for one profile kind. It is safe for concurrent use.
type Form struct {
	mu            sync.Mutex
	kind          models.Kind
	maxImageBytes int

	phase    Phase
	values   map[string]any
	sections []*section
	err      error
}

// New builds an empty form for kind. maxImageBytes <= 0 uses the server default ceiling.
func New(kind models.Kind, maxImageBytes int) (*Form, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown profile kind %q", kind)
	}
	if maxImageBytes <= 0 {
		maxImageBytes = validation.DefaultMaxImageBytes
	}
	f := &Form{kind: kind, maxImageBytes: maxImageBytes}
	f.resetLocked()
	return f, nil
}

// Kind reports the profile kind being edited.
func (f *Form) Kind() models.Kind { return f.kind }

// Phase reports whether a submit is in flight.
func (f *Form) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Set records a scalar field value.
func (f *Form) Set(field string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[field] = value
}

// Value returns a field's current value.
func (f *Form) Value(field string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[field]
	return v, ok
}

// SetImage converts a selected file to an embedded data URI and stores it in field,
// replacing any earlier selection. Non-images and oversize files are rejected and
// leave the field unchanged.
func (f *Form) SetImage(field string, data []byte) error {
	uri, err := f.dataURI(field, data)
	if err != nil {
		return err
	}
	f.Set(field, uri)
	return nil
}

func (f *Form) dataURI(field string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%s: no file selected", field)
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%s: file must be an image, got %s", field, mt.String())
	}
	if len(data) > f.maxImageBytes {
		return "", fmt.Errorf("%s: image is larger than %d bytes", field, f.maxImageBytes)
	}
	// Drop parameters such as "; charset=utf-8" on SVG.
	mime, _, _ := strings.Cut(mt.String(), ";")
	uri := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	if err := validation.DataImage(uri, f.maxImageBytes); err != nil {
		return "", fmt.Errorf("%s: %w", field, err)
	}
	return uri, nil
}

// Err returns the failure of the last submit, or nil.
func (f *Form) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Message is the user-facing text of the last failure: the server's message
// when the API rejected the submission.
func (f *Form) Message() string {
	err := f.Err()
	if err == nil {
		return ""
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// FieldErrors returns the per-field messages of the last rejected submit.
func (f *Form) FieldErrors() map[string]string {
	var apiErr *client.APIError
	if errors.As(f.Err(), &apiErr) {
		return apiErr.Errors
	}
	return nil
}

// Payload flattens the form into a create request body. Empty repeated entries are skipped.
func (f *Form) Payload() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payloadLocked()
}

func (f *Form) payloadLocked() map[string]any {
	out := make(map[string]any, len(f.values)+len(f.sections))
	for k, v := range f.values {
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		out[k] = v
	}
	for _, s := range f.sections {
		out[s.name] = s.values()
	}
	return out
}

// Submit sends the payload. On success the form resets and the stored record is
// returned; on failure the input is kept and the error is available from Err.
func (f *Form) Submit(ctx context.Context, s Submitter) (map[string]any, error) {
	f.mu.Lock()
	if f.phase == Submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	f.phase = Submitting
	f.err = nil
	payload := f.payloadLocked()
	f.mu.Unlock()

	record, err := s.Create(ctx, f.kind, payload)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.phase = Editing
	if err != nil {
		f.err = err
		return nil, err
	}
	f.resetLocked()
	return record, nil
}

// Reset restores the initial state: defaults only and one empty entry per section.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

func (f *Form) resetLocked() {
	f.values = map[string]any{}
	f.err = nil
	switch f.kind {
	case models.KindBuyerCard, models.KindSeller:
		f.values["brandColor"] = models.DefaultBrandColor
	}
	f.sections = f.sections[:0]
	for _, layout := range sectionLayouts[f.kind] {
		f.sections = append(f.sections, newSection(layout))
	}
}
