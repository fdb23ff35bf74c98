package form

// messages maps each field and rejection kind to the text shown in the
// field's error container. The page ships in Russian only.
var messages = map[Field]map[Kind]string{
	Name: {
		EmptyField:     "Имя обязательно для заполнения",
		TooShort:       "Имя должно содержать минимум 2 символа",
		InvalidCharset: "Имя может содержать только буквы",
	},
	Email: {
		EmptyField:    "Email обязателен для заполнения",
		InvalidFormat: "Введите корректный email",
	},
	Phone: {
		InvalidFormat: "Некорректный формат телефона",
	},
	Message: {
		EmptyField: "Сообщение обязательно для заполнения",
		TooShort:   "Сообщение должно содержать минимум 10 символов",
		TooLong:    "Сообщение слишком длинное (максимум 1000 символов)",
	},
	Agreement: {
		NotAccepted: "Необходимо согласие с политикой конфиденциальности",
	},
}

// MessageFor returns the user-facing text for a field/kind pair.
// KindNone, and any pair a rule never produces, yield "".
func MessageFor(f Field, k Kind) string {
	if k == KindNone {
		return ""
	}
	return messages[f][k]
}
