// Package styles provides Lip Gloss styles for the roster TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the TUI.
var (
	Primary     = lipgloss.Color("#2563EB") // Blue
	Secondary   = lipgloss.Color("#06B6D4") // Cyan
	Success     = lipgloss.Color("#10B981") // Green
	Warning     = lipgloss.Color("#F59E0B") // Amber
	Error       = lipgloss.Color("#EF4444") // Red
	Muted       = lipgloss.Color("#6B7280") // Gray
	MutedLight  = lipgloss.Color("#9CA3AF") // Light Gray
	Background  = lipgloss.Color("#1F2937") // Dark Gray
	Foreground  = lipgloss.Color("#F9FAFB") // White
	BorderColor = lipgloss.Color("#374151") // Border Gray
)

// Header styles.
var (
	// HeaderLabelStyle is for header labels.
	HeaderLabelStyle = lipgloss.NewStyle().
				Foreground(MutedLight)

	// HeaderValueStyle is for header values.
	HeaderValueStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Bold(true)

	// TitleStyle is for the application title.
	TitleStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Primary).
			Bold(true).
			Padding(0, 1)
)

// Table styles.
var (
	// TableHeaderStyle is the column header row.
	TableHeaderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(BorderColor).
				BorderBottom(true).
				Foreground(Secondary).
				Bold(true).
				Padding(0, 1)

	// TableCellStyle is an ordinary cell.
	TableCellStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Padding(0, 1)

	// TableSelectedStyle is the highlighted row.
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Primary).
				Bold(true)

	// EmptyTableStyle is the placeholder shown when no row matches.
	EmptyTableStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			Padding(1, 2)
)

// Box styles.
var (
	// BoxStyle is a standard box with border.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	// FocusedBoxStyle is a box that's currently focused.
	FocusedBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
)

// Text styles.
var (
	// MutedTextStyle is for de-emphasized text.
	MutedTextStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// ErrorTextStyle is for error messages.
	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(Error)

	// SuccessTextStyle is for success messages.
	SuccessTextStyle = lipgloss.NewStyle().
				Foreground(Success)

	// WarningTextStyle is for warning messages.
	WarningTextStyle = lipgloss.NewStyle().
				Foreground(Warning)

	// InfoTextStyle is for neutral messages.
	InfoTextStyle = lipgloss.NewStyle().
			Foreground(MutedLight)
)

// Status bar styles.
var (
	// StatusBarStyle is the main status bar container.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(MutedLight).
			Background(Background).
			Padding(0, 1)

	// KeyStyle is for keyboard shortcut keys.
	KeyStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// HelpStyle is for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted)
)

// Form component styles.
var (
	// FormLabelStyle is for form field labels.
	FormLabelStyle = lipgloss.NewStyle().
			Foreground(MutedLight)

	// FormLabelFocusedStyle is for focused form field labels.
	FormLabelFocusedStyle = lipgloss.NewStyle().
				Foreground(Secondary).
				Bold(true)

	// FormInputStyle is for form text inputs (unfocused).
	FormInputStyle = lipgloss.NewStyle().
			Foreground(MutedLight).
			Padding(0, 1)

	// FormInputFocusedStyle is for focused form text inputs.
	FormInputFocusedStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Background).
				Padding(0, 1)

	// ButtonPrimaryStyle is for primary buttons (focused).
	ButtonPrimaryStyle = lipgloss.NewStyle().
				Foreground(Background).
				Background(Primary).
				Bold(true).
				Padding(0, 2)

	// ButtonSecondaryUnfocusedStyle is for secondary buttons (unfocused).
	ButtonSecondaryUnfocusedStyle = lipgloss.NewStyle().
					Foreground(MutedLight).
					Border(lipgloss.NormalBorder()).
					BorderForeground(Muted).
					Padding(0, 1)

	// ButtonDangerStyle is for danger buttons (focused).
	ButtonDangerStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Error).
				Bold(true).
				Padding(0, 2)
)
