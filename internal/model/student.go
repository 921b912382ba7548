package model

// Student is a dataset student record together with the guardian contact.
// Field names follow the dataset document.
type Student struct {
	ID            string `json:"id_alunos"`
	Name          string `json:"nome_do_aluno"`
	Serie         string `json:"serie"`
	GuardianEmail string `json:"email_responsavel"`
	GuardianPhone string `json:"telefone_responsavel"`
	GuardianName  string `json:"responsavel_nome"`
}
