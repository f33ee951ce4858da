// Package i18n translates user-facing API messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLocale        = "en"
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator resolves message keys per locale.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a translator with the built-in en, pt and nl catalogs.
func NewTranslator() *Translator {
	return &Translator{messages: defaultMessages}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Supports reports whether locale has a catalog.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// Translate returns the message for key in locale, then in DefaultLocale,
// then the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale picks the first supported language from Accept-Language.
// Quality values are ignored; listed order wins.
func GetLocale(c *gin.Context) string {
	header := c.GetHeader(AcceptLanguageHeader)
	if header == "" {
		return DefaultLocale
	}

	t := GetTranslator()
	for _, part := range strings.Split(header, ",") {
		lang, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		lang, _, _ = strings.Cut(lang, "-")
		lang = strings.ToLower(strings.TrimSpace(lang))
		if t.Supports(lang) {
			return lang
		}
	}
	return DefaultLocale
}

// Message translates key for the request's locale.
func Message(c *gin.Context, key string) string {
	return GetTranslator().Translate(key, GetLocale(c))
}

var defaultMessages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:       "Invalid request",
		ErrKeyInvalidRequestBody:   "Invalid request body",
		ErrKeyInternalError:        "An unexpected error occurred",
		ErrKeyUnauthorized:         "Unauthorized",
		ErrKeyAPIKeyRequired:       "API key is required",
		ErrKeyInvalidAPIKey:        "Invalid API key",
		ErrKeyForbidden:            "Forbidden",
		ErrKeyNotFound:             "Not found",
		ErrKeyRateLimitExceeded:    "Too many requests, please try again later",
		ErrKeyConflict:             "Conflict",
		ErrKeyInvalidToken:         "Invalid or expired token",
		ErrKeyTokenRequired:        "Authentication token is required",
		ErrKeyTimeout:              "Request timed out",
		ErrKeyCatalogUnavailable:   "Products could not be loaded right now. Please try again shortly.",
		ErrKeySessionNotFound:      "This product list has expired. Please reload the page.",
		ErrKeyProductNotFound:      "Product not found",
		ErrKeyProductUnavailable:   "This product is no longer available",
		ErrKeyOrderNotFound:        "Order not found",
		ErrKeyEditorNotFound:       "This price editor has expired. Reopen the product form.",
		ErrKeyValidationEmail:      "email: must be a valid email address",
		ErrKeyValidationPhone:      "phone: is required and must be at most 20 characters",
		ErrKeyValidationQuantity:   "quantity: must be between 1 and 100",
		ErrKeyValidationStatus:     "status: must be pending, completed, failed or cancelled",
		ErrKeyValidationPriceRange: "min_price and max_price must be numbers",
		ErrKeyValidationID:         "id: must be a positive integer",
		ErrKeyValidationField:      "field: must be original_price or discount_percentage",
	},
	"pt": {
		ErrKeyInvalidRequest:       "Requisição inválida",
		ErrKeyInvalidRequestBody:   "Corpo da requisição inválido",
		ErrKeyInternalError:        "Ocorreu um erro inesperado",
		ErrKeyUnauthorized:         "Não autorizado",
		ErrKeyAPIKeyRequired:       "Chave de API é obrigatória",
		ErrKeyInvalidAPIKey:        "Chave de API inválida",
		ErrKeyForbidden:            "Proibido",
		ErrKeyNotFound:             "Não encontrado",
		ErrKeyRateLimitExceeded:    "Muitas requisições, tente novamente mais tarde",
		ErrKeyConflict:             "Conflito",
		ErrKeyInvalidToken:         "Token inválido ou expirado",
		ErrKeyTokenRequired:        "Token de autenticação é obrigatório",
		ErrKeyTimeout:              "Tempo da requisição esgotado",
		ErrKeyCatalogUnavailable:   "Não foi possível carregar os produtos agora. Tente novamente em instantes.",
		ErrKeySessionNotFound:      "Esta lista de produtos expirou. Recarregue a página.",
		ErrKeyProductNotFound:      "Produto não encontrado",
		ErrKeyProductUnavailable:   "Este produto não está mais disponível",
		ErrKeyOrderNotFound:        "Pedido não encontrado",
		ErrKeyEditorNotFound:       "Este editor de preço expirou. Reabra o formulário do produto.",
		ErrKeyValidationEmail:      "email: deve ser um endereço de email válido",
		ErrKeyValidationPhone:      "phone: é obrigatório e deve ter no máximo 20 caracteres",
		ErrKeyValidationQuantity:   "quantity: deve estar entre 1 e 100",
		ErrKeyValidationStatus:     "status: deve ser pending, completed, failed ou cancelled",
		ErrKeyValidationPriceRange: "min_price e max_price devem ser números",
		ErrKeyValidationID:         "id: deve ser um inteiro positivo",
		ErrKeyValidationField:      "field: deve ser original_price ou discount_percentage",
	},
	"nl": {
		ErrKeyInvalidRequest:       "Ongeldig verzoek",
		ErrKeyInvalidRequestBody:   "Ongeldige aanvraag body",
		ErrKeyInternalError:        "Er is een onverwachte fout opgetreden",
		ErrKeyUnauthorized:         "Niet geautoriseerd",
		ErrKeyAPIKeyRequired:       "API-sleutel is vereist",
		ErrKeyInvalidAPIKey:        "Ongeldige API-sleutel",
		ErrKeyForbidden:            "Verboden",
		ErrKeyNotFound:             "Niet gevonden",
		ErrKeyRateLimitExceeded:    "Te veel verzoeken, probeer het later opnieuw",
		ErrKeyConflict:             "Conflict",
		ErrKeyInvalidToken:         "Ongeldig of verlopen token",
		ErrKeyTokenRequired:        "Authenticatietoken is vereist",
		ErrKeyTimeout:              "Time-out van het verzoek",
		ErrKeyCatalogUnavailable:   "Producten kunnen nu niet worden geladen. Probeer het zo opnieuw.",
		ErrKeySessionNotFound:      "Deze productlijst is verlopen. Laad de pagina opnieuw.",
		ErrKeyProductNotFound:      "Product niet gevonden",
		ErrKeyProductUnavailable:   "Dit product is niet meer beschikbaar",
		ErrKeyOrderNotFound:        "Bestelling niet gevonden",
		ErrKeyEditorNotFound:       "Deze prijseditor is verlopen. Open het productformulier opnieuw.",
		ErrKeyValidationEmail:      "email: moet een geldig e-mailadres zijn",
		ErrKeyValidationPhone:      "phone: is verplicht en mag maximaal 20 tekens lang zijn",
		ErrKeyValidationQuantity:   "quantity: moet tussen 1 en 100 liggen",
		ErrKeyValidationStatus:     "status: moet pending, completed, failed of cancelled zijn",
		ErrKeyValidationPriceRange: "min_price en max_price moeten getallen zijn",
		ErrKeyValidationID:         "id: moet een positief geheel getal zijn",
		ErrKeyValidationField:      "field: moet original_price of discount_percentage zijn",
	},
}
