// Package kerneltest provides a scripted kernel.Adapter for tests.
package kerneltest

import (
	"context"
	"fmt"

	apperrors "github.com/Guliveer/vitalis/exporter/internal/errors"
	"github.com/Guliveer/vitalis/exporter/internal/kernel"
)

// Phase is one scripted sysctl answer. Length is what the call reports;
// Data is copied into the caller's buffer on fill calls.
type Phase struct {
	Length int
	Data   []byte
	Err    error
}

// Script answers successive calls for one selector. Once exhausted the last
// phase is repeated.
type Script struct {
	Phases []Phase
	calls  int
}

// Calls returns how many sysctl calls the script has served.
func (s *Script) Calls() int { return s.calls }

func (s *Script) call(_ []int32, buf []byte) (int, error) {
	if len(s.Phases) == 0 {
		return 0, fmt.Errorf("kerneltest: empty script")
	}
	i := s.calls
	if i >= len(s.Phases) {
		i = len(s.Phases) - 1
	}
	s.calls++
	p := s.Phases[i]
	if p.Err != nil {
		return 0, p.Err
	}
	if buf != nil {
		copy(buf, p.Data)
	}
	return p.Length, nil
}

// Stable returns a script whose probe and fill both report data unchanged.
func Stable(data []byte) *Script {
	return &Script{Phases: []Phase{
		{Length: len(data)},
		{Length: len(data), Data: data},
	}}
}

// Adapter is an in-memory kernel. Nil error fields mean success.
type Adapter struct {
	MountEntries     []kernel.MountEntry
	MountsErr        error
	InterfaceEntries []kernel.InterfaceEntry
	InterfacesErr    error
	Load             [3]float64
	LoadErr          error
	Page             uint32
	PageErr          error

	// Sysctl maps a selector name to its scripted answers.
	Sysctl map[string]*Script
}

var _ kernel.Adapter = (*Adapter)(nil)

// Name returns the backend identifier.
func (a *Adapter) Name() string { return "kerneltest" }

// Mounts returns the scripted mount table.
func (a *Adapter) Mounts(context.Context) ([]kernel.MountEntry, error) {
	if a.MountsErr != nil {
		return nil, a.MountsErr
	}
	return a.MountEntries, nil
}

// Interfaces returns the scripted interface list.
func (a *Adapter) Interfaces(context.Context) ([]kernel.InterfaceEntry, error) {
	if a.InterfacesErr != nil {
		return nil, a.InterfacesErr
	}
	return a.InterfaceEntries, nil
}

// QuerySized drives kernel.QuerySized with the script for sel.
func (a *Adapter) QuerySized(_ context.Context, sel kernel.Selector) (kernel.SizedBuffer, error) {
	s, ok := a.Sysctl[sel.Name]
	if !ok {
		return kernel.SizedBuffer{}, apperrors.NewWithContext(apperrors.ErrCodeQueryUnavailable,
			"no such sysctl node", map[string]any{"selector": sel.Name})
	}
	return kernel.QuerySized(s.call, sel)
}

// PageSize returns the scripted page size.
func (a *Adapter) PageSize() (uint32, error) {
	return a.Page, a.PageErr
}

// LoadAverages returns the scripted load averages.
func (a *Adapter) LoadAverages(context.Context) ([3]float64, error) {
	return a.Load, a.LoadErr
}
