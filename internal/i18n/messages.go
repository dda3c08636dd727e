package i18n

var catalog = map[string]map[string]string{
	LocaleUz: {
		"error.bad_request":          "Noto'g'ri so'rov",
		"error.unauthorized":         "Avtorizatsiya talab qilinadi",
		"error.forbidden":            "Admin huquqi talab qilinadi!",
		"error.not_found":            "Ma'lumot topilmadi",
		"error.internal":             "Server xatosi, keyinroq urinib ko'ring",
		"error.auth_header_missing":  "Authorization sarlavhasi topilmadi",
		"error.auth_header_invalid":  "Authorization sarlavhasi noto'g'ri",
		"error.token_invalid":        "Token yaroqsiz yoki muddati o'tgan",
		"error.token_revoked":        "Token bekor qilingan, qayta kiring",
		"error.login_disabled":       "Telegram orqali kirish o'chirilgan",
		"error.login_request_failed": "Kirish so'rovini yaratib bo'lmadi",
		"error.login_token_missing":  "Kirish tokeni ko'rsatilmagan",
		"error.login_not_found":      "Kirish so'rovi topilmadi yoki muddati o'tgan",
		"error.user_id_invalid":      "Foydalanuvchi identifikatori noto'g'ri",
		"error.user_not_found":       "Foydalanuvchi topilmadi",
		"error.login_too_many":       "Urinishlar juda ko'p, %d soniyadan keyin qayta urinib ko'ring",
		"error.rate_limited":         "So'rovlar juda ko'p, %d soniyadan keyin qayta urinib ko'ring",
		"error.rate_limit_unavailable": "So'rovni tekshirib bo'lmadi, keyinroq urinib ko'ring",
		"error.telegram_auth_failed": "Telegram orqali tasdiqlash muvaffaqiyatsiz",
		"error.order_not_found":      "Buyurtma topilmadi",
		"error.order_status_invalid": "Buyurtma holati noto'g'ri",
		"error.product_not_found":    "Mahsulot topilmadi",
		"error.category_not_found":   "Kategoriya topilmadi",
	},
	LocaleRu: {
		"error.bad_request":          "Некорректный запрос",
		"error.unauthorized":         "Требуется авторизация",
		"error.forbidden":            "Требуются права администратора!",
		"error.not_found":            "Данные не найдены",
		"error.internal":             "Ошибка сервера, попробуйте позже",
		"error.auth_header_missing":  "Заголовок Authorization отсутствует",
		"error.auth_header_invalid":  "Неверный заголовок Authorization",
		"error.token_invalid":        "Токен недействителен или просрочен",
		"error.token_revoked":        "Токен отозван, войдите заново",
		"error.login_disabled":       "Вход через Telegram отключен",
		"error.login_request_failed": "Не удалось создать запрос на вход",
		"error.login_token_missing":  "Токен входа не указан",
		"error.login_not_found":      "Запрос на вход не найден или просрочен",
		"error.user_id_invalid":      "Некорректный идентификатор пользователя",
		"error.user_not_found":       "Пользователь не найден",
		"error.login_too_many":       "Слишком много попыток, повторите через %d сек.",
		"error.rate_limited":         "Слишком много запросов, повторите через %d сек.",
		"error.rate_limit_unavailable": "Не удалось проверить запрос, попробуйте позже",
		"error.telegram_auth_failed": "Не удалось подтвердить вход через Telegram",
		"error.order_not_found":      "Заказ не найден",
		"error.order_status_invalid": "Недопустимый статус заказа",
		"error.product_not_found":    "Товар не найден",
		"error.category_not_found":   "Категория не найдена",
	},
	LocaleEn: {
		"error.bad_request":          "Bad request",
		"error.unauthorized":         "Authorization required",
		"error.forbidden":            "Admin rights required",
		"error.not_found":            "Not found",
		"error.internal":             "Server error, please try again later",
		"error.auth_header_missing":  "Authorization header is missing",
		"error.auth_header_invalid":  "Authorization header is invalid",
		"error.token_invalid":        "Token is invalid or expired",
		"error.token_revoked":        "Token has been revoked, sign in again",
		"error.login_disabled":       "Telegram login is disabled",
		"error.login_request_failed": "Could not create login request",
		"error.login_token_missing":  "Login token is missing",
		"error.login_not_found":      "Login request not found or expired",
		"error.user_id_invalid":      "Invalid user id",
		"error.user_not_found":       "User not found",
		"error.login_too_many":       "Too many attempts, try again in %d seconds",
		"error.rate_limited":         "Too many requests, try again in %d seconds",
		"error.rate_limit_unavailable": "Could not verify the request, try again later",
		"error.telegram_auth_failed": "Telegram verification failed",
		"error.order_not_found":      "Order not found",
		"error.order_status_invalid": "Invalid order status",
		"error.product_not_found":    "Product not found",
		"error.category_not_found":   "Category not found",
	},
}
