package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/popcorn/internal/model"
)

// Skin is a colour palette. Files under <configDir>/skins/<name>.yml use the
// same keys; keys left out keep their default value.
type Skin struct {
	Primary string   `yaml:"primary"`
	Accent  string   `yaml:"accent"`
	Muted   string   `yaml:"muted"`
	Error   string   `yaml:"error"`
	Text    string   `yaml:"text"`
	Banner  []string `yaml:"banner"`
}

func defaultSkin() Skin {
	return Skin{
		Primary: "#AB8BFF",
		Accent:  "#3F3A64",
		Muted:   "#A8B5DB",
		Error:   "#FF5F5F",
		Text:    "#FFFFFF",
		Banner:  []string{"#D6C7FF", "#C8B6FF", "#BBA5FF", "#AB8BFF"},
	}
}

// Active palette and the styles derived from it.
var (
	ColorPrimary lipgloss.Color
	ColorAccent  lipgloss.Color
	ColorMuted   lipgloss.Color
	ColorError   lipgloss.Color
	ColorText    lipgloss.Color
	bannerColors []lipgloss.Color

	headingStyle      lipgloss.Style
	sectionTitleStyle lipgloss.Style
	searchBoxStyle    lipgloss.Style
	errorStyle        lipgloss.Style
	loadingStyle      lipgloss.Style
	helpStyle         lipgloss.Style
	cardStyle         lipgloss.Style
	cardTitleStyle    lipgloss.Style
	cardMetaStyle     lipgloss.Style
	cardPosterStyle   lipgloss.Style
	ratingStyle       lipgloss.Style
	chartTitleStyle   lipgloss.Style
)

func init() {
	applySkin(defaultSkin())
}

// InitializeSkin activates the named skin. "default" (or "") selects the
// built-in palette; other names are read from configDir/skins. On error the
// previously active palette stays in place.
func InitializeSkin(name, configDir string) error {
	if name == "" || name == model.DefaultSkin {
		applySkin(defaultSkin())
		return nil
	}

	skin, err := loadSkinFile(filepath.Join(configDir, "skins", name+".yml"))
	if err != nil {
		return fmt.Errorf("loading skin %q: %w", name, err)
	}
	applySkin(skin)
	return nil
}

func loadSkinFile(path string) (Skin, error) {
	skin := defaultSkin()

	data, err := os.ReadFile(path)
	if err != nil {
		return skin, err
	}

	var override Skin
	if err := yaml.Unmarshal(data, &override); err != nil {
		return skin, fmt.Errorf("parsing %s: %w", path, err)
	}

	if override.Primary != "" {
		skin.Primary = override.Primary
	}
	if override.Accent != "" {
		skin.Accent = override.Accent
	}
	if override.Muted != "" {
		skin.Muted = override.Muted
	}
	if override.Error != "" {
		skin.Error = override.Error
	}
	if override.Text != "" {
		skin.Text = override.Text
	}
	if len(override.Banner) > 0 {
		skin.Banner = override.Banner
	}
	return skin, nil
}

func applySkin(s Skin) {
	ColorPrimary = lipgloss.Color(s.Primary)
	ColorAccent = lipgloss.Color(s.Accent)
	ColorMuted = lipgloss.Color(s.Muted)
	ColorError = lipgloss.Color(s.Error)
	ColorText = lipgloss.Color(s.Text)

	bannerColors = bannerColors[:0]
	for _, c := range s.Banner {
		bannerColors = append(bannerColors, lipgloss.Color(c))
	}

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	sectionTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText).MarginTop(1)
	searchBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)
	errorStyle = lipgloss.NewStyle().Foreground(ColorError)
	loadingStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	helpStyle = lipgloss.NewStyle().Foreground(ColorMuted).Faint(true)
	cardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent).
		Padding(0, 1)
	cardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	cardMetaStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	cardPosterStyle = lipgloss.NewStyle().Foreground(ColorMuted).Faint(true)
	ratingStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	chartTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
}
