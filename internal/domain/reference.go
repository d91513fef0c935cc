package domain

// Provinces lists the 23 Argentine provinces plus the autonomous city.
var Provinces = []string{
	"Buenos Aires",
	"CABA",
	"Catamarca",
	"Chaco",
	"Chubut",
	"Córdoba",
	"Corrientes",
	"Entre Ríos",
	"Formosa",
	"Jujuy",
	"La Pampa",
	"La Rioja",
	"Mendoza",
	"Misiones",
	"Neuquén",
	"Río Negro",
	"Salta",
	"San Juan",
	"San Luis",
	"Santa Cruz",
	"Santa Fe",
	"Santiago del Estero",
	"Tierra del Fuego",
	"Tucumán",
}

// EmailDomains are the selectable mail domains, leading "@" included.
var EmailDomains = []string{
	"@gmail.com",
	"@hotmail.com",
	"@yahoo.com",
	"@outlook.com",
}

var (
	provinceSet    = toSet(Provinces)
	emailDomainSet = toSet(EmailDomains)
)

func IsProvince(v string) bool {
	_, ok := provinceSet[v]
	return ok
}

func IsEmailDomain(v string) bool {
	_, ok := emailDomainSet[v]
	return ok
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
