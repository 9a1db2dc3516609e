package i18n

// Message keys rendered by the API error handler.
const (
	MsgBadRequest           = "bad_request"
	MsgValidation           = "validation"
	MsgUnauthorized         = "unauthorized"
	MsgForbidden            = "forbidden"
	MsgNotFound             = "not_found"
	MsgConflict             = "conflict"
	MsgInternal             = "internal"
	MsgBackendUnavailable   = "backend_unavailable"
	MsgInvalidCredentials   = "invalid_credentials"
	MsgUserExists           = "user_exists"
	MsgSessionExpired       = "session_expired"
	MsgCountryNotFound      = "country_not_found"
	MsgPostNotFound         = "post_not_found"
	MsgNotificationNotFound = "notification_not_found"
	MsgDocumentNotFound     = "document_not_found"
	MsgInvalidDocument      = "invalid_document"
	MsgTooManyFiles         = "too_many_files"
	MsgFileTooLarge         = "file_too_large"
	MsgNoFiles              = "no_files"
	MsgInvalidStep          = "invalid_step"
	MsgInvalidPreference    = "invalid_preference"
	MsgEmptyHistory         = "empty_history"
	MsgChatUnavailable      = "chat_unavailable"
)

var messages = map[string]map[string]string{
	French: {
		MsgBadRequest:           "Requête invalide",
		MsgValidation:           "Données invalides",
		MsgUnauthorized:         "Authentification requise",
		MsgForbidden:            "Accès refusé",
		MsgNotFound:             "Ressource introuvable",
		MsgConflict:             "La ressource existe déjà",
		MsgInternal:             "Erreur interne du serveur",
		MsgBackendUnavailable:   "Service temporairement indisponible",
		MsgInvalidCredentials:   "Email ou mot de passe incorrect",
		MsgUserExists:           "Un compte existe déjà avec cet email",
		MsgSessionExpired:       "Session expirée, veuillez vous reconnecter",
		MsgCountryNotFound:      "Pays introuvable",
		MsgPostNotFound:         "Publication introuvable",
		MsgNotificationNotFound: "Notification introuvable",
		MsgDocumentNotFound:     "Document introuvable",
		MsgInvalidDocument:      "Type de fichier non autorisé",
		MsgTooManyFiles:         "Trop de fichiers (10 maximum)",
		MsgFileTooLarge:         "Fichier trop volumineux (10 Mo maximum)",
		MsgNoFiles:              "Aucun fichier reçu",
		MsgInvalidStep:          "Étape invalide",
		MsgInvalidPreference:    "Valeur de préférence invalide",
		MsgEmptyHistory:         "L'historique de conversation est vide",
		MsgChatUnavailable:      "Erreur lors de la communication avec l'assistant",
	},
	English: {
		MsgBadRequest:           "Invalid request",
		MsgValidation:           "Invalid data",
		MsgUnauthorized:         "Authentication required",
		MsgForbidden:            "Access denied",
		MsgNotFound:             "Resource not found",
		MsgConflict:             "Resource already exists",
		MsgInternal:             "Internal server error",
		MsgBackendUnavailable:   "Service temporarily unavailable",
		MsgInvalidCredentials:   "Incorrect email or password",
		MsgUserExists:           "An account already exists with this email",
		MsgSessionExpired:       "Session expired, please sign in again",
		MsgCountryNotFound:      "Country not found",
		MsgPostNotFound:         "Post not found",
		MsgNotificationNotFound: "Notification not found",
		MsgDocumentNotFound:     "Document not found",
		MsgInvalidDocument:      "File type not allowed",
		MsgTooManyFiles:         "Too many files (10 maximum)",
		MsgFileTooLarge:         "File too large (10 MB maximum)",
		MsgNoFiles:              "No file received",
		MsgInvalidStep:          "Invalid step",
		MsgInvalidPreference:    "Invalid preference value",
		MsgEmptyHistory:         "Conversation history is empty",
		MsgChatUnavailable:      "Error while contacting the assistant",
	},
	Arabic: {
		MsgBadRequest:           "طلب غير صالح",
		MsgValidation:           "بيانات غير صالحة",
		MsgUnauthorized:         "المصادقة مطلوبة",
		MsgForbidden:            "تم رفض الوصول",
		MsgNotFound:             "المورد غير موجود",
		MsgConflict:             "المورد موجود بالفعل",
		MsgInternal:             "خطأ داخلي في الخادم",
		MsgBackendUnavailable:   "الخدمة غير متاحة مؤقتا",
		MsgInvalidCredentials:   "البريد الإلكتروني أو كلمة المرور غير صحيحة",
		MsgUserExists:           "يوجد حساب بهذا البريد الإلكتروني",
		MsgSessionExpired:       "انتهت الجلسة، يرجى تسجيل الدخول مجددا",
		MsgCountryNotFound:      "البلد غير موجود",
		MsgPostNotFound:         "المنشور غير موجود",
		MsgNotificationNotFound: "الإشعار غير موجود",
		MsgDocumentNotFound:     "المستند غير موجود",
		MsgInvalidDocument:      "نوع الملف غير مسموح به",
		MsgTooManyFiles:         "عدد الملفات كبير جدا (10 كحد أقصى)",
		MsgFileTooLarge:         "الملف كبير جدا (10 ميغابايت كحد أقصى)",
		MsgNoFiles:              "لم يتم استلام أي ملف",
		MsgInvalidStep:          "خطوة غير صالحة",
		MsgInvalidPreference:    "قيمة تفضيل غير صالحة",
		MsgEmptyHistory:         "سجل المحادثة فارغ",
		MsgChatUnavailable:      "خطأ أثناء التواصل مع المساعد",
	},
}

// Message returns the text for key in lang, falling back to Default and
// then to the key itself.
func Message(lang, key string) string {
	if m, ok := messages[lang][key]; ok {
		return m
	}
	if m, ok := messages[Default][key]; ok {
		return m
	}
	return key
}
