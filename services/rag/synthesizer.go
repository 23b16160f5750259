package rag

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/spacebio/articles-api/services"
)

// Generator is the black-box generation provider.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// markdownLink matches a Markdown link pointing at an http(s) URL.
var markdownLink = regexp.MustCompile(`\[[^\]]+\]\(https?://[^)]+\)`)

// Synthesizer builds the generation prompt from the primary sources, invokes
// the provider and guarantees the answer carries a references section.
type Synthesizer struct {
	generator Generator
}

// NewSynthesizer creates a new Synthesizer
func NewSynthesizer(generator Generator) *Synthesizer {
	return &Synthesizer{generator: generator}
}

// Synthesize produces the answer text for a question grounded in the given
// sources. The bibliography is built before the provider call so the answer
// always ends with the exact reference list, whether the model cooperates or
// not. Must not be called with an empty source set; the pipeline short-circuits
// that case earlier.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, sources []PrimarySource) (string, error) {
	bibliography := BuildBibliography(sources)
	prompt := buildPrompt(question, sources, bibliography)

	answer, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", services.WrapExternal("generation provider failed", err)
	}

	return EnsureReferences(answer, bibliography), nil
}

// BuildBibliography renders one Markdown list item per distinct source
// article, in rank order, joined by blank lines. Several chunks of the same
// article ground the answer as separate context blocks but cite once.
func BuildBibliography(sources []PrimarySource) string {
	var items []string
	seen := make(map[string]struct{}, len(sources))
	for _, source := range sources {
		if _, ok := seen[source.Link]; ok {
			continue
		}
		seen[source.Link] = struct{}{}
		items = append(items, fmt.Sprintf("%d. **[%s](%s)**", len(items)+1, source.Title, source.Link))
	}
	return strings.Join(items, "\n\n")
}

// EnsureReferences appends the bibliography when the generated answer is
// missing either the references header or any Markdown link. Pure function;
// applying it to an answer that already passes both checks changes nothing.
func EnsureReferences(answer, bibliography string) string {
	if strings.Contains(answer, ReferencesHeader) && markdownLink.MatchString(answer) {
		return answer
	}
	return answer + "\n\n" + ReferencesHeader + "\n\n" + bibliography
}

// buildPrompt assembles the full generation prompt: context from every
// primary source with a readable source marker, the formatting contract, and
// the pre-built bibliography the model must reproduce verbatim.
func buildPrompt(question string, sources []PrimarySource, bibliography string) string {
	var context strings.Builder
	for _, source := range sources {
		context.WriteString(fmt.Sprintf("[Fuente: %s]\n%s\n\n", source.Title, source.Text))
	}

	return fmt.Sprintf(`Tu tarea es analizar artículos científicos sobre biociencia espacial y generar respuestas en formato Markdown, claras y fáciles de entender para personas interesadas en el tema pero sin formación técnica.

A partir de la información de los artículos proporcionados, sigue cuidadosamente las siguientes instrucciones para estructurar tu respuesta:

### Instrucciones

1. **Empieza directamente con la respuesta a la pregunta del usuario.** Sé claro y preciso. No incluyas frases como "Como astrobiólogo asistente..." ni ninguna presentación de tu rol.
2. **Sintetiza la información de todos los artículos proporcionados**, no solo del primero.
3. **Haz la respuesta breve por defecto.** Máximo tres párrafos, salvo que la pregunta exija más detalle para ser respondida con precisión.
4. **Usa Markdown con moderación**: subtítulos de nivel 3 con `+"`###`"+` y negritas con `+"`**`"+` solo cuando aporten claridad. No incluyas citas numéricas como [1] dentro del texto.
5. Si no puedes responder porque el contexto no contiene la información necesaria o es irrelevante, responde exactamente con:
   > La información solicitada no se encuentra disponible en los artículos científicos consultados.
6. Al final, incluye obligatoriamente una sección "### Referencias" reproduciendo esta bibliografía tal cual, sin modificarla:

%s

### Entradas
Contexto de los artículos:
---
%s---
Pregunta del usuario:
"%s"

Responde ahora en formato Markdown, empezando directamente con la respuesta y terminando con la sección ### Referencias.`, bibliography, context.String(), question)
}
