package auth

// Claims es la información extraída del token de gub.uy. El tipo de
// documento llega crudo y se normaliza recién en el dominio.
type Claims struct {
	DocumentType   string
	DocumentNumber string
	Email          string
	TenantID       string
}
