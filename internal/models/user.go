package models

// User is the static demo profile.
type User struct {
	Username    string `json:"username" yaml:"username"`
	Email       string `json:"email" yaml:"email"`
	MemberSince string `json:"member_since" yaml:"member_since"`
	AvatarURL   string `json:"avatar_url" yaml:"avatar_url"`
}

// Credentials is the demo login pair. It is compared in plain text.
type Credentials struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Section identifies a dashboard view.
type Section string

const (
	SectionInicio    Section = "inicio"
	SectionUsuario   Section = "usuario"
	SectionHabitos   Section = "habitos"
	SectionMetas     Section = "metas"
	SectionProgresos Section = "progresos"
	SectionAjustes   Section = "ajustes"
	SectionPerfil    Section = "perfil"
)

// NavSections lists the sections shown in the navigation bar, in order.
var NavSections = []Section{
	SectionInicio,
	SectionHabitos,
	SectionMetas,
	SectionProgresos,
	SectionUsuario,
	SectionAjustes,
}

// Title returns the display label for the section.
func (s Section) Title() string {
	switch s {
	case SectionInicio:
		return "Inicio"
	case SectionUsuario, SectionPerfil:
		return "Perfil de Usuario"
	case SectionHabitos:
		return "Hábitos"
	case SectionMetas:
		return "Metas"
	case SectionProgresos:
		return "Progresos"
	case SectionAjustes:
		return "Ajustes"
	default:
		return string(s)
	}
}
