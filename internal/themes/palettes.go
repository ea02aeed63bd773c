// SPDX-License-Identifier: MIT
package themes

import "github.com/thatcatcamp/themecycle/internal/styles"

// DefaultKey is loaded when a session starts.
const DefaultKey = "configs/config1.json"

// Built-in theme keys in display order.
var builtinKeys = []string{
	"configs/config1.json",
	"configs/config2.json",
	"configs/config3.json",
}

// BuiltinKeys returns the seed keys in display order.
func BuiltinKeys() []string {
	return append([]string(nil), builtinKeys...)
}

// Builtin returns fresh copies of the seed documents.
func Builtin() map[string]*styles.Document {
	return map[string]*styles.Document{
		"configs/config1.json": {
			Name: "Default Theme",
			Styles: styles.Styles{
				Body: props(layout("Arial, sans-serif"), map[string]string{
					"backgroundColor": "#f0f0f0",
				}),
				Heading: props(map[string]string{
					"marginBottom": "30px",
					"color":        "#333333",
					"fontSize":     "2em",
				}),
				Button: &styles.Block{
					Properties: map[string]string{
						"padding":      "15px 30px",
						"fontSize":     "18px",
						"border":       "none",
						"borderRadius": "5px",
						"cursor":       "pointer",
						"transition":   "all 0.3s ease",
						"color":        "#ffffff",
					},
					ColorProperty: "backgroundColor",
					InitialColor:  "#4CAF50",
					Colors:        []string{"#4CAF50", "#2196F3", "#FF9800", "#F44336", "#9C27B0", "#00BCD4"},
				},
				Selector: props(map[string]string{
					"marginBottom": "20px",
					"color":        "#333333",
				}),
			},
		},
		"configs/config2.json": {
			Name: "Dark Theme",
			Styles: styles.Styles{
				Body: props(layout("'Segoe UI', Tahoma, Geneva, Verdana, sans-serif"), map[string]string{
					"backgroundColor": "#1a1a1a",
				}),
				Heading: props(map[string]string{
					"marginBottom": "30px",
					"color":        "#ffffff",
					"fontSize":     "2em",
					"textShadow":   "0 2px 4px rgba(0,0,0,0.5)",
				}),
				Button: &styles.Block{
					Properties: map[string]string{
						"padding":      "15px 30px",
						"fontSize":     "18px",
						"border":       "2px solid #ffffff",
						"borderRadius": "8px",
						"cursor":       "pointer",
						"transition":   "all 0.3s ease",
						"color":        "#ffffff",
						"fontWeight":   "500",
					},
					ColorProperty: "backgroundColor",
					InitialColor:  "#6c5ce7",
					Colors:        []string{"#6c5ce7", "#a29bfe", "#fd79a8", "#fdcb6e", "#00b894", "#00cec9"},
				},
				Selector: props(map[string]string{
					"marginBottom": "20px",
					"color":        "#ffffff",
				}),
			},
		},
		"configs/config3.json": {
			Name: "Colorful Theme",
			Styles: styles.Styles{
				Body: props(layout("'Comic Sans MS', cursive, sans-serif"), map[string]string{
					"background": "linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
				}),
				Heading: props(map[string]string{
					"marginBottom": "30px",
					"color":        "#ffffff",
					"fontSize":     "2.5em",
					"textShadow":   "2px 2px 4px rgba(0,0,0,0.3)",
				}),
				Button: &styles.Block{
					Properties: map[string]string{
						"padding":      "20px 40px",
						"fontSize":     "20px",
						"fontWeight":   "bold",
						"border":       "none",
						"borderRadius": "25px",
						"cursor":       "pointer",
						"transition":   "all 0.3s ease",
						"boxShadow":    "0 4px 15px rgba(0,0,0,0.2)",
						"color":        "#ffffff",
					},
					ColorProperty: "backgroundColor",
					InitialColor:  "#ff6b6b",
					Colors:        []string{"#ff6b6b", "#4ecdc4", "#ffe66d", "#ff8b94", "#95e1d3", "#f38181"},
				},
				Selector: props(map[string]string{
					"marginBottom": "20px",
					"color":        "#ffffff",
				}),
			},
		},
	}
}

// layout is the centered column layout every built-in body shares.
func layout(fontFamily string) map[string]string {
	return map[string]string{
		"fontFamily":     fontFamily,
		"display":        "flex",
		"flexDirection":  "column",
		"alignItems":     "center",
		"justifyContent": "center",
		"minHeight":      "100vh",
		"margin":         "0",
	}
}

func props(sets ...map[string]string) *styles.Block {
	out := &styles.Block{Properties: make(map[string]string)}
	for _, set := range sets {
		for k, v := range set {
			out.Properties[k] = v
		}
	}
	return out
}
