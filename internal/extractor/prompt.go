package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

func buildPointExtractionPrompt(text string) string {
	return `Analise o seguinte texto e extraia todas as coordenadas geográficas mencionadas.
Retorne APENAS um array JSON no formato:
[
    {
        "lat": latitude,
        "lon": longitude,
        "name": "nome ou descrição do local",
        "type": "tipo de ponto (cidade, rio, floresta, etc)",
        "category": "hidrografia|relevo|vegetação|localidade|infraestrutura|limite",
        "weight": peso de confiança (0.0-1.0)
    }
]

Se não houver coordenadas claras, inferir baseado em locais mencionados na Amazônia.
IMPORTANTE: Responda SOMENTE com o JSON, sem explicações adicionais.

Texto: ` + text
}

func buildAnalysisPrompt(text string, points []model.GeoPoint) string {
	names := make([]string, 0, len(points))
	for _, p := range points {
		names = append(names, fmt.Sprintf("%s (%s)", p.Name, p.Type))
	}

	return `Realize uma análise geoespacial da seguinte região amazônica:
` + text + `

Locais identificados:
` + strings.Join(names, ", ") + `

Forneça uma análise detalhada sobre:
1. Potenciais riscos ambientais na região
2. Características geomorfológicas notáveis
3. Recomendações para monitoramento ambiental
4. Pontos de interesse para um estudo de campo

Estruture a resposta em tópicos claros.`
}

func buildSamplingStrategyPrompt(text string, points []model.GeoPoint) string {
	coords, _ := json.Marshal(points)

	return `Com base na descrição da região amazônica a seguir e nas coordenadas extraídas,
sugira os melhores parâmetros para uma amostragem LiDAR:

Região: ` + text + `

Coordenadas: ` + string(coords) + `

Responda APENAS com um JSON no seguinte formato:
{
    "densidade_pontos": <número recomendado entre 500 e 5000>,
    "raio_amostragem": <valor entre 0.01 e 0.2>,
    "altitude_voo": <valor recomendado em metros>,
    "areas_prioritarias": [<lista de 2-3 áreas prioritárias com breve justificativa>],
    "epoca_ideal": "<melhor período do ano para coleta>"
}`
}
