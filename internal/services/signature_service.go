package services

import (
	"github.com/Matooloose/verdant-village-store-sub002/external/payfast"
)

// SignatureService exposes signing to browser-delivered clients. It exists
// because the passphrase can only live server-side; the endpoint returns the
// digest and nothing else.
type SignatureService struct {
	Codec *payfast.Codec
}

func NewSignatureService(codec *payfast.Codec) *SignatureService {
	return &SignatureService{Codec: codec}
}

func (s *SignatureService) Sign(params *payfast.ParameterSet) string {
	return s.Codec.Sign(params)
}
