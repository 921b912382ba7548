package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidDate    ErrCode = "INVALID_DATE"
	ErrInvalidMonth   ErrCode = "INVALID_MONTH"

	// ─── Login & Settings ──────────────────────────────────────────────
	ErrFieldsRequired         ErrCode = "FIELDS_REQUIRED"
	ErrPasswordFieldsRequired ErrCode = "PASSWORD_FIELDS_REQUIRED"
	ErrPasswordMismatch       ErrCode = "PASSWORD_MISMATCH"
	ErrPasswordTooShort       ErrCode = "PASSWORD_TOO_SHORT"

	// ─── Messaging ─────────────────────────────────────────────────────
	ErrSeriesRequired     ErrCode = "SERIES_REQUIRED"
	ErrStudentRequired    ErrCode = "STUDENT_REQUIRED"
	ErrTemplateRequired   ErrCode = "TEMPLATE_REQUIRED"
	ErrDateRequired       ErrCode = "DATE_REQUIRED"
	ErrStudentNotInSeries ErrCode = "STUDENT_NOT_IN_SERIES"
	ErrRecordNotFound     ErrCode = "RECORD_NOT_FOUND"
	ErrDispatchFailed     ErrCode = "DISPATCH_FAILED"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound    ErrCode = "NOT_FOUND"
	ErrClassExists ErrCode = "CLASS_EXISTS"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validação falhou. Verifique os dados informados."
	case ErrInvalidPayload:
		return "Corpo da requisição inválido."
	case ErrInvalidDate:
		return "Data inválida. Use o formato AAAA-MM-DD."
	case ErrInvalidMonth:
		return "Mês ou ano inválido."

	// ─── Login & Settings ──────────────────────────────────────────────
	case ErrFieldsRequired:
		return "Por favor, preencha todos os campos."
	case ErrPasswordFieldsRequired:
		return "Por favor, preencha todos os campos de senha."
	case ErrPasswordMismatch:
		return "As senhas não coincidem."
	case ErrPasswordTooShort:
		return "A nova senha deve ter pelo menos 6 caracteres."

	// ─── Messaging ─────────────────────────────────────────────────────
	case ErrSeriesRequired:
		return "Por favor, selecione uma série."
	case ErrStudentRequired:
		return "Por favor, selecione um aluno."
	case ErrTemplateRequired:
		return "Por favor, selecione uma mensagem."
	case ErrDateRequired:
		return "Por favor, selecione uma data para esta mensagem."
	case ErrStudentNotInSeries:
		return "O aluno selecionado não pertence a esta série."
	case ErrRecordNotFound:
		return "Erro ao encontrar dados do aluno ou mensagem."
	case ErrDispatchFailed:
		return "Erro ao enviar mensagem. Tente novamente."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Recurso não encontrado."
	case ErrClassExists:
		return "Esta turma já existe."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Muitas requisições. Tente novamente mais tarde."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Erro interno do servidor."
	default:
		return "Ocorreu um erro inesperado."
	}
}
