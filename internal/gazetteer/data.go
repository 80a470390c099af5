package gazetteer

import "github.com/jesusmjunior/jesusqgis/internal/model"

type entry struct {
	key       string // normalized lookup name
	name      string // display name
	pointType string
	category  model.PointCategory
	lat, lon  float64
}

// entries is the fixed gazetteer table. Order matters: the substring
// pass and the category fallback both take the first hit, so the
// anchor of each category leads its block.
var entries = []entry{
	// Localities
	{"manaus", "Manaus", "cidade", model.CategoryLocality, -3.1190275, -60.0217314},
	{"itacoatiara", "Itacoatiara", "cidade", model.CategoryLocality, -3.1386, -58.4442},
	{"manacapuru", "Manacapuru", "cidade", model.CategoryLocality, -3.2997, -60.6206},
	{"novo airão", "Novo Airão", "cidade", model.CategoryLocality, -2.6206, -60.9439},
	{"parintins", "Parintins", "cidade", model.CategoryLocality, -2.6287, -56.7356},
	{"tefé", "Tefé", "cidade", model.CategoryLocality, -3.3541, -64.7106},
	{"tabatinga", "Tabatinga", "cidade", model.CategoryLocality, -4.2523, -69.9381},
	{"santarém", "Santarém", "cidade", model.CategoryLocality, -2.4431, -54.7083},
	{"belém", "Belém", "cidade", model.CategoryLocality, -1.4558, -48.4902},
	{"macapá", "Macapá", "cidade", model.CategoryLocality, 0.0349, -51.0694},
	{"boa vista", "Boa Vista", "cidade", model.CategoryLocality, 2.8235, -60.6758},
	{"porto velho", "Porto Velho", "cidade", model.CategoryLocality, -8.7612, -63.9004},
	{"rio branco", "Rio Branco", "cidade", model.CategoryLocality, -9.9754, -67.8249},

	// Hydrography
	{"rio negro", "Rio Negro", "rio", model.CategoryHydrography, -3.066, -60.15},
	{"rio solimões", "Rio Solimões", "rio", model.CategoryHydrography, -3.30, -60.40},
	{"encontro das águas", "Encontro das Águas", "rio", model.CategoryHydrography, -3.08, -59.95},
	{"rio amazonas", "Rio Amazonas", "rio", model.CategoryHydrography, -2.65, -56.00},
	{"rio madeira", "Rio Madeira", "rio", model.CategoryHydrography, -5.50, -61.30},
	{"rio tapajós", "Rio Tapajós", "rio", model.CategoryHydrography, -4.50, -56.30},
	{"rio xingu", "Rio Xingu", "rio", model.CategoryHydrography, -5.00, -52.70},
	{"lago janauari", "Lago Janauari", "lago", model.CategoryHydrography, -3.20, -60.05},

	// Relief
	{"pico da neblina", "Pico da Neblina", "montanha", model.CategoryRelief, 0.8036, -66.0075},
	{"serra do aracá", "Serra do Aracá", "serra", model.CategoryRelief, 0.86, -63.45},

	// Conservation / vegetation
	{"reserva adolpho ducke", "Reserva Adolpho Ducke", "reserva", model.CategoryVegetation, -2.93, -59.97},
	{"anavilhanas", "Arquipélago de Anavilhanas", "área natural", model.CategoryVegetation, -2.70, -60.75},
	{"parque nacional do jaú", "Parque Nacional do Jaú", "parque", model.CategoryVegetation, -1.90, -61.80},
	{"floresta nacional do tapajós", "Floresta Nacional do Tapajós", "floresta", model.CategoryVegetation, -3.05, -55.00},
	{"mamirauá", "Reserva Mamirauá", "reserva", model.CategoryVegetation, -2.78, -65.00},

	// Infrastructure
	{"teatro amazonas", "Teatro Amazonas", "monumento", model.CategoryInfrastructure, -3.1302, -60.0233},
	{"porto de manaus", "Porto de Manaus", "porto", model.CategoryInfrastructure, -3.1390, -60.0240},
	{"ponte rio negro", "Ponte Rio Negro", "ponte", model.CategoryInfrastructure, -3.0842, -60.0622},
	{"am-010", "Rodovia AM-010", "rodovia", model.CategoryInfrastructure, -2.85, -59.50},
	{"usina de balbina", "Usina de Balbina", "hidrelétrica", model.CategoryInfrastructure, -1.9176, -59.4735},
}

// defaultEntry is the ultimate fallback: everything unrecognized
// resolves to the regional capital.
var defaultEntry = entries[0]

var index = func() map[string]entry {
	m := make(map[string]entry, len(entries))
	for _, e := range entries {
		m[e.key] = e
	}
	return m
}()
