package bubbletea

// StatusLine exports statusLine for testing.
func StatusLine(m Model) string {
	return m.statusLine()
}

// HelpKeys exports helpKeys for testing.
func HelpKeys(keys []string) string {
	return helpKeys(keys)
}
