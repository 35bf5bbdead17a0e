// Package icons maps the icon names used in the content document to the
// icons the page can render.
package icons

import "strings"

// ID identifies one of the icons the page ships with.
type ID int

const (
	FaCode ID = iota
	SiSelenium
	SiPostman
	SiJira
	SiJenkins
	SiDocker
	SiGit
	FaBug
	FaDatabase
	FaMobile
	FaRobot
	FaCheckCircle
	FaAward
	FaUsers
	FaBullseye
	FaShieldAlt
	FaBolt
	Code
	Shield
	Zap
)

// Default is returned for names that are not in the table.
const Default = FaCode

type Pack string

const (
	PackSimpleIcons Pack = "simple-icons"
	PackFontAwesome Pack = "font-awesome"
	PackLucide      Pack = "lucide"
)

// Icon is what templates need to draw an icon.
type Icon struct {
	ID    ID
	Name  string
	Pack  Pack
	Class string
}

var table = []Icon{
	{ID: FaCode, Name: "FaCode", Pack: PackFontAwesome},
	{ID: SiSelenium, Name: "SiSelenium", Pack: PackSimpleIcons},
	{ID: SiPostman, Name: "SiPostman", Pack: PackSimpleIcons},
	{ID: SiJira, Name: "SiJira", Pack: PackSimpleIcons},
	{ID: SiJenkins, Name: "SiJenkins", Pack: PackSimpleIcons},
	{ID: SiDocker, Name: "SiDocker", Pack: PackSimpleIcons},
	{ID: SiGit, Name: "SiGit", Pack: PackSimpleIcons},
	{ID: FaBug, Name: "FaBug", Pack: PackFontAwesome},
	{ID: FaDatabase, Name: "FaDatabase", Pack: PackFontAwesome},
	{ID: FaMobile, Name: "FaMobile", Pack: PackFontAwesome},
	{ID: FaRobot, Name: "FaRobot", Pack: PackFontAwesome},
	{ID: FaCheckCircle, Name: "FaCheckCircle", Pack: PackFontAwesome},
	{ID: FaAward, Name: "FaAward", Pack: PackFontAwesome},
	{ID: FaUsers, Name: "FaUsers", Pack: PackFontAwesome},
	{ID: FaBullseye, Name: "FaBullseye", Pack: PackFontAwesome},
	{ID: FaShieldAlt, Name: "FaShieldAlt", Pack: PackFontAwesome},
	{ID: FaBolt, Name: "FaBolt", Pack: PackFontAwesome},
	{ID: Code, Name: "Code", Pack: PackLucide},
	{ID: Shield, Name: "Shield", Pack: PackLucide},
	{ID: Zap, Name: "Zap", Pack: PackLucide},
}

var byName = make(map[string]Icon, len(table))

func init() {
	for i := range table {
		table[i].Class = className(table[i])
		byName[table[i].Name] = table[i]
	}
}

// className turns "FaCheckCircle" into "icon-fa-check-circle".
func className(ic Icon) string {
	var b strings.Builder
	b.WriteString("icon")
	for i, r := range ic.Name {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		if i == 0 {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Resolve never fails: unknown names get the Default icon.
func Resolve(name string) Icon {
	if ic, ok := byName[name]; ok {
		return ic
	}
	return table[Default]
}

// Lookup reports whether name is a known icon.
func Lookup(name string) (Icon, bool) {
	ic, ok := byName[name]
	return ic, ok
}

// Get returns the icon for id, or the Default icon when id is out of range.
func Get(id ID) Icon {
	if id < 0 || int(id) >= len(table) {
		return table[Default]
	}
	return table[id]
}

func (id ID) String() string {
	return Get(id).Name
}
