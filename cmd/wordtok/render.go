package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/wordtok/wordtok/vocab"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	tokenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	symbolStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// renderTokens shows tokens as a quoted, styled list, one line.
func renderTokens(tokens []string, isSymbol func(string) bool) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		style := tokenStyle
		if isSymbol(tok) {
			style = symbolStyle
		}
		parts[i] = style.Render(strconv.Quote(tok))
	}
	return strings.Join(parts, dimStyle.Render(" "))
}

// renderIDs shows an ID sequence space-separated.
func renderIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}

// renderVocabTable shows a vocabulary snapshot as an ID/token table.
func renderVocabTable(entries []vocab.Entry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("ID", "TOKEN")
	for _, e := range entries {
		t.Row(strconv.Itoa(e.ID), strconv.Quote(e.Token))
	}
	return t.Render()
}
