package config

var Presets = map[string]*Config{
	"koch": {
		Axiom: "F", Angle: 90, Step: 1, Generations: 3,
		Rules: []Rule{
			{Predecessor: "F", Successor: "F+F-F-F+F"},
		},
	},
	"dragon": {
		Axiom: "FX", Angle: 90, Step: 1, Generations: 10,
		Rules: []Rule{
			{Predecessor: "X", Successor: "X+YF+"},
			{Predecessor: "Y", Successor: "-FX-Y"},
		},
	},
	"sierpinski": {
		Axiom: "F-G-G", Angle: 120, Step: 1, Pens: "G", Generations: 5,
		Rules: []Rule{
			{Predecessor: "F", Successor: "F-G+F+G-F"},
			{Predecessor: "G", Successor: "GG"},
		},
	},
	"plant": {
		Axiom: "X", Angle: 25, Step: 1, Generations: 5,
		Rules: []Rule{
			{Predecessor: "X", Successor: "F-[[X]+X]+F[+FX]-X"},
			{Predecessor: "F", Successor: "FF"},
		},
	},
	"stochastic": {
		Axiom: "F", Angle: 25, Step: 1, Generations: 4, Seed: 42,
		Rules: []Rule{
			{Predecessor: "F", Successor: "F[+F]F[-F]F", Chance: 0.33},
			{Predecessor: "F", Successor: "F[+F]F", Chance: 0.5},
			{Predecessor: "F", Successor: "F[-F]F"},
		},
	},
	"rings": {
		Axiom: "F+F+F+F", Angle: 90, Step: 1, Generations: 3,
		Rules: []Rule{
			{Predecessor: "F", Successor: "FF+F+F+F+FF"},
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
