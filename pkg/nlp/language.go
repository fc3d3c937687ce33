package nlp

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/kaptinlin/jsonschema"
)

const schemaFile = "schema.json"

//go:embed languages/*.json
var languageFS embed.FS

var (
	ErrInvalidLanguagePack = errors.New("invalid language pack")
	ErrLanguageNotFound    = errors.New("language not found")
)

var (
	schemaOnce sync.Once
	packSchema *jsonschema.Schema
	errSchema  error
)

func languageSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		data, err := languageFS.ReadFile(path.Join("languages", schemaFile))
		if err != nil {
			errSchema = fmt.Errorf("read language schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		packSchema, errSchema = compiler.Compile(data)
		if errSchema != nil {
			errSchema = fmt.Errorf("compile language schema: %w", errSchema)
		}
	})
	return packSchema, errSchema
}

// LoadLanguage parses and validates one language pack document.
func LoadLanguage(data []byte) (SupportedLanguage, error) {
	schema, err := languageSchema()
	if err != nil {
		return SupportedLanguage{}, err
	}

	result := schema.ValidateJSON(data)
	if !result.IsValid() {
		return SupportedLanguage{}, fmt.Errorf("%w: %v", ErrInvalidLanguagePack, result.Errors)
	}

	var lang SupportedLanguage
	if err := json.Unmarshal(data, &lang); err != nil {
		return SupportedLanguage{}, fmt.Errorf("%w: %v", ErrInvalidLanguagePack, err)
	}

	return Prepare(lang)
}

// Prepare compiles the pattern table of a language built in code. Packs
// loaded through LoadLanguage are already prepared.
func Prepare(lang SupportedLanguage) (SupportedLanguage, error) {
	seen := make(map[VoiceAction]bool)
	for _, cp := range lang.CommandPatterns {
		if !cp.Action.Valid() {
			return SupportedLanguage{}, fmt.Errorf("%w: %s: unknown action %q", ErrInvalidLanguagePack, lang.Code, cp.Action)
		}
		if seen[cp.Action] {
			return SupportedLanguage{}, fmt.Errorf("%w: %s: action %s declared twice", ErrInvalidLanguagePack, lang.Code, cp.Action)
		}
		seen[cp.Action] = true
	}

	lang.compiled = compileCommands(lang.CommandPatterns)
	for _, command := range lang.compiled {
		for _, p := range command.patterns {
			if !p.hasWords() {
				return SupportedLanguage{}, fmt.Errorf("%w: %s: pattern %q has no words", ErrInvalidLanguagePack, lang.Code, p.source)
			}
		}
	}

	lang.fillers = make(map[string]bool, len(lang.FillerWords))
	for _, w := range lang.FillerWords {
		lang.fillers[Normalize(w)] = true
	}
	lang.numbers = make(map[string]int, len(lang.NumberWords))
	for w, n := range lang.NumberWords {
		lang.numbers[Normalize(w)] = n
	}

	return lang, nil
}

// Registry holds the installed language packs keyed by code.
type Registry struct {
	languages   map[string]SupportedLanguage
	defaultCode string
}

// NewRegistry loads every embedded language pack.
func NewRegistry(defaultCode string) (*Registry, error) {
	entries, err := languageFS.ReadDir("languages")
	if err != nil {
		return nil, fmt.Errorf("read language packs: %w", err)
	}

	var languages []SupportedLanguage
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == schemaFile {
			continue
		}
		data, err := languageFS.ReadFile(path.Join("languages", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		lang, err := LoadLanguage(data)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", entry.Name(), err)
		}
		languages = append(languages, lang)
	}

	return NewRegistryFrom(defaultCode, languages...)
}

func NewRegistryFrom(defaultCode string, languages ...SupportedLanguage) (*Registry, error) {
	r := &Registry{languages: make(map[string]SupportedLanguage, len(languages))}
	for _, lang := range languages {
		if lang.compiled == nil {
			prepared, err := Prepare(lang)
			if err != nil {
				return nil, err
			}
			lang = prepared
		}
		r.languages[lang.Code] = lang
	}

	def, ok := r.Get(defaultCode)
	if !ok {
		return nil, fmt.Errorf("%w: default %q", ErrLanguageNotFound, defaultCode)
	}
	r.defaultCode = def.Code

	return r, nil
}

// Get looks a language up by code, ignoring case.
func (r *Registry) Get(code string) (SupportedLanguage, bool) {
	if lang, ok := r.languages[code]; ok {
		return lang, true
	}
	for c, lang := range r.languages {
		if strings.EqualFold(c, code) {
			return lang, true
		}
	}
	return SupportedLanguage{}, false
}

// Resolve returns the requested language or the default one.
func (r *Registry) Resolve(code string) SupportedLanguage {
	if lang, ok := r.Get(code); ok {
		return lang
	}
	return r.Default()
}

func (r *Registry) Default() SupportedLanguage {
	return r.languages[r.defaultCode]
}

// List returns the installed languages sorted by code.
func (r *Registry) List() []SupportedLanguage {
	out := make([]SupportedLanguage, 0, len(r.languages))
	for _, lang := range r.languages {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Code < out[j].Code
	})
	return out
}
