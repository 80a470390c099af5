package extractor

import (
	"context"
	"fmt"
	"sort"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

// The semantic pipeline runs five generation calls in sequence, each
// narrowing the previous layer's output: decomposition, entity
// identification, fuzzy coordinate analysis, set-theory consolidation,
// and final validation. Only the final layer is parsed for coordinates.

var semanticLayers = []struct {
	name   string
	prompt func(text, previous string) string
}{
	{"decomposição semântica", semanticDecompositionPrompt},
	{"identificação de entidades", geoEntitiesPrompt},
	{"análise fuzzy de coordenadas", fuzzyCoordinatesPrompt},
	{"colapso por teoria de conjuntos", setConsolidationPrompt},
	{"validação semântica final", finalValidationPrompt},
}

// ExtractSemantic runs the layered semantic extraction pipeline and
// returns the validated coordinates sorted by descending weight.
// progress, if non-nil, is called before each layer runs.
func (c *Client) ExtractSemantic(ctx context.Context, text string, progress func(layer int, name string)) ([]model.GeoPoint, error) {
	previous := ""
	for i, layer := range semanticLayers {
		if progress != nil {
			progress(i+1, layer.name)
		}

		reply, err := c.Generate(ctx, layer.prompt(text, previous), 0.1)
		if err != nil {
			return nil, fmt.Errorf("camada %d (%s): %w", i+1, layer.name, err)
		}
		previous = reply
	}

	points, err := ParsePoints(previous)
	if err != nil {
		return nil, fmt.Errorf("validação final: %w", err)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Weight > points[j].Weight
	})
	return points, nil
}

func semanticDecompositionPrompt(text, _ string) string {
	return `Analise o seguinte texto e decomponha-o em suas partes semânticas:

Texto: "` + text + `"

Extraia:
1. Núcleos nominais (substantivos que indicam locais)
2. Núcleos verbais (verbos que indicam movimento ou posição)
3. Modificadores espaciais (adjetivos ou advérbios relacionados a locais)
4. Conjuntos preposicionais de localização (ex: "próximo a", "ao lado de")

Retorne APENAS um objeto JSON no seguinte formato:
{
    "nominal_cores": ["lista de núcleos nominais"],
    "verbal_cores": ["lista de núcleos verbais"],
    "spatial_modifiers": ["lista de modificadores espaciais"],
    "prepositional_sets": ["lista de conjuntos preposicionais"]
}`
}

func geoEntitiesPrompt(text, previous string) string {
	return `Analise o seguinte texto e identifique TODAS as entidades geográficas específicas:

Texto: "` + text + `"

Decomposição semântica da etapa anterior:
` + previous + `

Categorize precisamente as entidades encontradas:
- Bairros, Ruas/Avenidas, Monumentos/Prédios
- Relevos (ex: "Serra do Mar", "Pico da Neblina")
- Rios (ex: "Rio Negro", "Solimões")
- Áreas naturais, Cidades/Estados
- Pontos cardeais e referências direcionais

IMPORTANTE: Indique para cada entidade um peso de confiança (0.0-1.0) baseado em quão específica e inequívoca ela é.

Retorne APENAS um objeto JSON no seguinte formato:
{
    "entities": [
        {
            "name": "nome da entidade",
            "type": "tipo da entidade",
            "confidence": valor de confiança (0.0-1.0),
            "context": "contexto textual em que aparece"
        }
    ]
}`
}

func fuzzyCoordinatesPrompt(text, previous string) string {
	return `Com base nas entidades geográficas identificadas, determine as coordenadas geográficas mais prováveis:

Texto: "` + text + `"

Entidades identificadas:
` + previous + `

Para cada entidade geográfica significativa:
1. Determine as coordenadas mais precisas (latitude, longitude)
2. Atribua um grau de pertinência (0.0-1.0)
3. Identifique o raio de dispersão aproximado (em km)
4. Determine a relevância contextual da entidade no texto (0.0-1.0)

ATENÇÃO: Foque APENAS em entidades amazônicas. Considere contextos da Amazônia Legal brasileira.

Retorne APENAS um objeto JSON no seguinte formato:
{
    "coordinates": [
        {
            "entity": "nome da entidade",
            "lat": latitude em graus decimais,
            "lon": longitude em graus decimais,
            "membership": valor fuzzy de pertinência (0.0-1.0),
            "dispersion_radius": raio em km,
            "contextual_relevance": relevância (0.0-1.0)
        }
    ]
}`
}

func setConsolidationPrompt(text, previous string) string {
	return `Aplique teoria de conjuntos para eliminar redundâncias e resolver conflitos nas coordenadas abaixo:

Texto: "` + text + `"

Coordenadas candidatas:
` + previous + `

Quando múltiplas coordenadas se referem a entidades semanticamente relacionadas:
1. Identifique interseções por proximidade geográfica
2. Calcule o conjunto mínimo que mantém a fidelidade semântica
3. Elimine outliers baseado em distância e relevância contextual
4. Resolva conflitos utilizando regras de prioridade:
   - Entidades específicas > entidades genéricas
   - Referências diretas > referências indiretas
   - Alta confiança > baixa confiança

Retorne APENAS um objeto JSON com coordenadas finais consolidadas:
{
    "consolidated_coordinates": [
        {
            "entity": "nome da entidade principal",
            "related_entities": ["lista de entidades relacionadas"],
            "lat": latitude consolidada,
            "lon": longitude consolidada,
            "confidence": confiança consolidada (0.0-1.0),
            "precision_radius": raio de precisão em metros
        }
    ]
}`
}

func finalValidationPrompt(text, previous string) string {
	return `Realize a validação semântica final das coordenadas identificadas:

Texto original: "` + text + `"

Coordenadas consolidadas:
` + previous + `

Para cada coordenada consolidada:
1. Verifique a coerência com o contexto completo do texto
2. Garanta que a entidade identificada tem relevância no contexto descrito
3. Atribua um tipo semântico preciso (cidade, rio, floresta, etc.)
4. Determine um nome descritivo que melhor represente o ponto no contexto

IMPORTANTE: Retorne APENAS um array JSON no seguinte formato:
[
    {
        "lat": latitude final,
        "lon": longitude final,
        "name": "nome descritivo do local",
        "type": "tipo semântico",
        "weight": peso semântico final (0.0-1.0)
    }
]

APENAS JSON PURO, sem explicações ou comentários adicionais.`
}
