package main

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

const linesPerSlot = 2

// board ties the renderer to the store: it regenerates all slot images on
// apply/clear and lazily creates blank ones on fetch. Writes are serialized.
type board struct {
	geo   Geometry
	fonts *fontSource
	store store

	mu sync.Mutex
}

func newBoard(geo Geometry, fonts *fontSource, s store) *board {
	return &board{geo: geo, fonts: fonts, store: s}
}

func (b *board) lineCount() int {
	return b.geo.Slots * linesPerSlot
}

// apply renders every slot from lines (two per slot, in order) and then
// saves the lines.
func (b *board) apply(lines []string) error {
	if len(lines) != b.lineCount() {
		return fmt.Errorf("expected %d lines, got %d", b.lineCount(), len(lines))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for slot := 1; slot <= b.geo.Slots; slot++ {
		i := (slot - 1) * linesPerSlot
		if err := b.generate(slot, lines[i], lines[i+1]); err != nil {
			return err
		}
	}

	if err := b.store.SaveLines(lines); err != nil {
		return fmt.Errorf("saving lines: %w", err)
	}
	return nil
}

func (b *board) clear() error {
	return b.apply(make([]string, b.lineCount()))
}

// image returns the stored PNG for slot, generating a blank one first if
// none exists.
func (b *board) image(slot int) ([]byte, error) {
	data, err := b.store.LoadImage(slot)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, errImageNotFound) {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Another request may have generated it while we waited.
	if data, err := b.store.LoadImage(slot); err == nil {
		return data, nil
	}

	log.Printf("Generating blank image for slot %d", slot)
	if err := b.generate(slot, "", ""); err != nil {
		return nil, err
	}
	return b.store.LoadImage(slot)
}

// savedLines returns the stored lines padded to the full count. A missing or
// unreadable line store yields blanks.
func (b *board) savedLines() []string {
	lines, err := b.store.LoadLines()
	if err != nil {
		log.Printf("Failed to load saved lines: %v", err)
		lines = nil
	}

	out := make([]string, b.lineCount())
	copy(out, lines)
	return out
}

func (b *board) generate(slot int, line1, line2 string) error {
	data, err := renderPNG(b.fonts, b.geo, line1, line2)
	if err != nil {
		return fmt.Errorf("rendering slot %d: %w", slot, err)
	}
	if err := b.store.SaveImage(slot, data); err != nil {
		return fmt.Errorf("saving slot %d: %w", slot, err)
	}
	return nil
}
