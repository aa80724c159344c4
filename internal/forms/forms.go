package forms

// Errors mapeia campo → mensagem. A chave "form" carrega erros que não
// pertencem a um campo específico (ex.: falha de conexão no check de
// duplicidade).
type Errors map[string]string

func (e Errors) Any() bool {
	return len(e) > 0
}

const connectionErrorMsg = "Erro de conexão com o banco de dados."
