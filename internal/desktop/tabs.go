package desktop

// OpenOrFocusTab activates the tab showing content (or titled title) in the
// given window, creating it if needed. The window's own content is kept as a
// home tab, added the first time any tab is opened.
func (s *Store) OpenOrFocusTab(windowID, title, content string) string {
	w := s.find(windowID)
	if w == nil {
		return ""
	}

	if w.Content != "" && !hasTabContent(w.Tabs, w.Content) {
		w.Tabs = append(w.Tabs, Tab{
			ID:      s.newID() + "-home",
			Title:   w.Title,
			Content: w.Content,
		})
	}

	for _, t := range w.Tabs {
		if t.Content == content {
			w.ActiveTabID = t.ID
			return t.ID
		}
	}
	for _, t := range w.Tabs {
		if t.Title == title {
			w.ActiveTabID = t.ID
			return t.ID
		}
	}

	tab := Tab{ID: s.newID(), Title: title, Content: content}
	w.Tabs = append(w.Tabs, tab)
	w.ActiveTabID = tab.ID
	return tab.ID
}

// CloseTab removes a tab. When the active tab goes away, the home tab takes
// over, then the last remaining tab.
func (s *Store) CloseTab(windowID, tabID string) {
	w := s.find(windowID)
	if w == nil {
		return
	}
	i := w.tabIndex(tabID)
	if i < 0 {
		return
	}
	w.Tabs = append(w.Tabs[:i], w.Tabs[i+1:]...)

	if w.ActiveTabID != tabID {
		return
	}
	w.ActiveTabID = ""
	// only a window with content has a home tab
	if w.Content != "" {
		for _, t := range w.Tabs {
			if t.Content == w.Content {
				w.ActiveTabID = t.ID
				return
			}
		}
	}
	if n := len(w.Tabs); n > 0 {
		w.ActiveTabID = w.Tabs[n-1].ID
	}
}

// SetActiveTab activates a tab that belongs to the window.
func (s *Store) SetActiveTab(windowID, tabID string) {
	w := s.find(windowID)
	if w == nil || w.tabIndex(tabID) < 0 {
		return
	}
	w.ActiveTabID = tabID
}

func hasTabContent(tabs []Tab, content string) bool {
	for _, t := range tabs {
		if t.Content == content {
			return true
		}
	}
	return false
}

// UpdateTab replaces a tab's title and content in place.
func (s *Store) UpdateTab(windowID, tabID, title, content string) {
	w := s.find(windowID)
	if w == nil {
		return
	}
	if i := w.tabIndex(tabID); i >= 0 {
		w.Tabs[i].Title = title
		w.Tabs[i].Content = content
	}
}

// AddTab appends a new active tab even when one with the same content exists.
func (s *Store) AddTab(windowID, title, content string) string {
	w := s.find(windowID)
	if w == nil {
		return ""
	}
	tab := Tab{ID: s.newID(), Title: title, Content: content}
	w.Tabs = append(w.Tabs, tab)
	w.ActiveTabID = tab.ID
	return tab.ID
}
