package entity

// Familias de archivos JSON de pasos aceptadas. Cualquier otro nombre se rechaza.
const (
	StepFileAtivo     = "roteiro-ativo.json"
	StepFileReceptivo = "roteiro-receptivo.json"
	StepFilePJ        = "roteiro-pj.json"
)

// StepFiles lista las familias permitidas.
var StepFiles = []string{StepFileAtivo, StepFileReceptivo, StepFilePJ}

// IsAllowedStepFile informa si name es exactamente una de las familias permitidas (sin rutas).
func IsAllowedStepFile(name string) bool {
	for _, f := range StepFiles {
		if f == name {
			return true
		}
	}
	return false
}
