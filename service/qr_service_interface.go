package service

// QRServiceInterface defines the contract for QR code generation
type QRServiceInterface interface {
	GeneratePNG(text string) ([]byte, error)
	GenerateDataURI(text string) (string, error)
}
