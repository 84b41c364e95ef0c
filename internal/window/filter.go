// Package window selects the top-level windows a user may choose from.
package window

import (
	"fmt"
	"strings"

	"github.com/atomicstack/xorg-choose-window/internal/logging/events"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Criteria narrows the window-system inventory.
type Criteria struct {
	Blacklist []ID
	// Whitelist restricts selection when non-empty.
	Whitelist []ID
	// Match keeps only windows whose title or class fuzzily matches. Empty
	// means no restriction.
	Match string
}

// Rejection reasons reported through the trace log.
const (
	ReasonUnmanaged   = "unmanaged"
	ReasonWhitelist   = "not-whitelisted"
	ReasonBlacklist   = "blacklisted"
	ReasonNotViewable = "not-viewable"
	ReasonWindowType  = "window-type"
	ReasonMatch       = "match"
)

// Select returns the windows that survive every predicate, in enumeration
// order. Any failed query aborts the selection.
func Select(inv Inventory, c Criteria) ([]Window, error) {
	all, err := inv.TopLevelWindows()
	if err != nil {
		return nil, fmt.Errorf("query_tree: %w", err)
	}
	managed, managedDefined, err := inv.ManagedWindows()
	if err != nil {
		return nil, fmt.Errorf("get_property _NET_CLIENT_LIST: %w", err)
	}
	events.Windows.Enumerated(len(all), len(managed), managedDefined)

	managedSet := toSet(managed)
	whitelist := toSet(c.Whitelist)
	blacklist := toSet(c.Blacklist)
	pattern := strings.TrimSpace(c.Match)

	selected := make([]Window, 0, len(all))
	for _, id := range all {
		reason, err := reject(inv, id, managedSet, managedDefined, whitelist, blacklist)
		if err != nil {
			return nil, err
		}
		if reason != "" {
			events.Windows.Rejected(uint32(id), reason)
			continue
		}
		w, err := inv.Describe(id)
		if err != nil {
			return nil, fmt.Errorf("get_geometry %s: %w", id.Hex(), err)
		}
		if pattern != "" && !Matches(w, pattern) {
			events.Windows.Rejected(uint32(id), ReasonMatch)
			continue
		}
		selected = append(selected, w)
	}
	events.Windows.Selected(len(selected))
	return selected, nil
}

// reject returns the first failing predicate, cheapest checks first.
func reject(inv Inventory, id ID, managed map[ID]struct{}, managedDefined bool, whitelist, blacklist map[ID]struct{}) (string, error) {
	if managedDefined {
		if _, ok := managed[id]; !ok {
			return ReasonUnmanaged, nil
		}
	}
	if len(whitelist) > 0 {
		if _, ok := whitelist[id]; !ok {
			return ReasonWhitelist, nil
		}
	}
	if _, ok := blacklist[id]; ok {
		return ReasonBlacklist, nil
	}
	viewable, err := inv.IsViewable(id)
	if err != nil {
		return "", fmt.Errorf("get_window_attributes %s: %w", id.Hex(), err)
	}
	if !viewable {
		return ReasonNotViewable, nil
	}
	normal, err := inv.IsNormalType(id)
	if err != nil {
		return "", fmt.Errorf("get_property _NET_WM_WINDOW_TYPE %s: %w", id.Hex(), err)
	}
	if !normal {
		return ReasonWindowType, nil
	}
	return "", nil
}

// Matches reports whether pattern fuzzily matches the window title or class.
func Matches(w Window, pattern string) bool {
	if pattern == "" {
		return true
	}
	return fuzzy.MatchFold(pattern, w.Title) || fuzzy.MatchFold(pattern, w.Class)
}

func toSet(ids []ID) map[ID]struct{} {
	set := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
