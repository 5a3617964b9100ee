package resolve

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/presence-audit/internal/model"
)

// Logical identity fields.
const (
	FieldName     = "name"
	FieldCity     = "city"
	FieldActivity = "activity"
	FieldNAF      = "naf"
)

// SynonymTable maps a logical field to the lowercase header spellings accepted for it.
type SynonymTable map[string][]string

// DefaultSynonyms returns the built-in synonym table.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		FieldName:                 {"entreprise", "nom", "enseigne", "société", "etablissement"},
		FieldCity:                 {"ville", "commune", "city", "localité"},
		FieldActivity:             {"activité", "secteur", "type", "métier"},
		FieldNAF:                  {"naf", "code naf", "ape"},
		model.PlatformFacebook:    {"facebook", "fb"},
		model.PlatformLinkedIn:    {"linkedin", "li"},
		model.PlatformInstagram:   {"instagram", "insta"},
		model.PlatformWebsite:     {"site web", "site", "www"},
		model.PlatformGMB:         {"google my business", "gmb", "google business", "fiche google"},
		model.PlatformPagesJaunes: {"pages jaunes", "pj"},
		model.PlatformYouTube:     {"youtube", "yt"},
		model.PlatformTripAdvisor: {"tripadvisor", "trip advisor", "ta"},
	}
}

// Clone returns a deep copy of the table.
func (t SynonymTable) Clone() SynonymTable {
	out := make(SynonymTable, len(t))
	for k, v := range t {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// LoadSynonyms reads a YAML synonym file and merges it over the defaults.
// Keys present in the file replace the built-in list for that field.
//
//	synonyms:
//	  city: [ville, commune, localité, town]
//	  Facebook: [facebook, fb, page fb]
func LoadSynonyms(path string) (SynonymTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "resolve: read synonyms %s", path)
	}

	var wrapper struct {
		Synonyms map[string][]string `yaml:"synonyms"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "resolve: parse synonyms")
	}

	table := DefaultSynonyms()
	for field, list := range wrapper.Synonyms {
		if len(list) == 0 {
			return nil, eris.Errorf("resolve: empty synonym list for %q", field)
		}
		table[field] = list
	}
	return table, nil
}
