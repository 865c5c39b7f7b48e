package model

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

const (
	UrgencyUrgent UrgencyLevel = "urgent"
	UrgencyHigh   UrgencyLevel = "high"
	UrgencyNormal UrgencyLevel = "normal"
	UrgencyLow    UrgencyLevel = "low"
)

type UrgencyLevel string

var urgencyLevels = map[UrgencyLevel]bool{
	UrgencyUrgent: true,
	UrgencyHigh:   true,
	UrgencyNormal: true,
	UrgencyLow:    true,
}

func (u UrgencyLevel) IsValid() error {
	if urgencyLevels[u] {
		return nil
	}
	return fmt.Errorf("invalid urgency level %q, must be one of %v", u, sortedKeys(urgencyLevels))
}

const (
	StatusNew       InquiryStatus = "new"
	StatusRead      InquiryStatus = "read"
	StatusResponded InquiryStatus = "responded"
	StatusClosed    InquiryStatus = "closed"
)

type InquiryStatus string

var inquiryStatuses = map[InquiryStatus]bool{
	StatusNew:       true,
	StatusRead:      true,
	StatusResponded: true,
	StatusClosed:    true,
}

func (s InquiryStatus) IsValid() error {
	if inquiryStatuses[s] {
		return nil
	}
	return fmt.Errorf("invalid status %q, must be one of %v", s, sortedKeys(inquiryStatuses))
}

func sortedKeys[K ~string](m map[K]bool) []K {
	keys := maps.Keys(m)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
