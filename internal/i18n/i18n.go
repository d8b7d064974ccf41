package i18n

import "fmt"

// T looks up a UI string for the given language, falling back to Arabic.
func T(lang, key string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return messages["ar"][key]
}

// Tf is T with fmt.Sprintf applied.
func Tf(lang, key string, args ...interface{}) string {
	return fmt.Sprintf(T(lang, key), args...)
}

var messages = map[string]map[string]string{
	"ar": {
		"welcome":             "مرحبا بك في بوت عقارات الرياض.\nاستخدم /new لإضافة عرض جديد، /my_listings لعرض إعلاناتك، و /search للبحث.",
		"choose_language":     "اختر اللغة / Choose language:",
		"choose_deal":         "ما نوع العرض؟",
		"deal_sale":           "بيع",
		"deal_rent":           "إيجار",
		"ask_property_type":   "ما نوع العقار؟ (شقة، فيلا، أرض، ...)",
		"ask_district":        "في أي حي يقع العقار؟",
		"ask_price":           "كم السعر بالريال؟ (أرقام فقط)",
		"ask_size":            "كم المساحة بالمتر المربع؟",
		"ask_bedrooms":        "كم عدد غرف النوم؟",
		"ask_bathrooms":       "كم عدد دورات المياه؟",
		"ask_description":     "اكتب وصفاً مختصراً للعقار.",
		"ask_contact":         "ما وسيلة التواصل؟ (جوال أو معرف تيليجرام)",
		"ask_license":         "أدخل رقم ترخيص فال (7-12 رقماً).",
		"ask_deed":            "أدخل رقم الصك (اختياري، لن يُنشر) أو اضغط تخطي.",
		"ask_location":        "أرسل موقع العقار أو اضغط تخطي.",
		"ask_photos":          "أرسل صور العقار (حتى 10 صور) ثم اضغط تم.",
		"btn_skip":            "تخطي",
		"btn_done":            "تم",
		"invalid_input":       "إدخال غير صالح، حاول مرة أخرى.",
		"invalid_number":      "الرجاء إدخال أرقام فقط.",
		"invalid_license":     "رقم الترخيص يجب أن يكون من 7 إلى 12 رقماً.",
		"invalid_deed":        "رقم الصك يجب أن يكون من 5 إلى 20 رقماً، أو اضغط تخطي.",
		"submitted":           "تم استلام إعلانك رقم #%d وهو الآن قيد المراجعة.",
		"submit_failed":       "تعذر حفظ الإعلان، أرسل \"تم\" مرة أخرى.",
		"cancelled":           "تم إلغاء المحادثة.",
		"approved_notice":     "تمت الموافقة على إعلانك رقم #%d ونشره في القناة.",
		"rejected_notice":     "نعتذر، تم رفض إعلانك رقم #%d.\nالسبب: %s",
		"no_listings":         "ليس لديك إعلانات بعد. استخدم /new لإضافة عرض.",
		"reason_unspecified":  "غير محدد",
	},
	"en": {
		"welcome":             "Welcome to the Riyadh real-estate bot.\nUse /new to submit a listing, /my_listings to see yours, and /search to browse.",
		"choose_language":     "اختر اللغة / Choose language:",
		"choose_deal":         "What kind of deal is this?",
		"deal_sale":           "Sale",
		"deal_rent":           "Rent",
		"ask_property_type":   "What type of property? (apartment, villa, land, ...)",
		"ask_district":        "Which district is it in?",
		"ask_price":           "What is the price in SAR? (digits only)",
		"ask_size":            "What is the area in square meters?",
		"ask_bedrooms":        "How many bedrooms?",
		"ask_bathrooms":       "How many bathrooms?",
		"ask_description":     "Write a short description.",
		"ask_contact":         "How can buyers reach you? (phone or Telegram handle)",
		"ask_license":         "Enter the FAL license number (7-12 digits).",
		"ask_deed":            "Enter the deed number (optional, never published) or press Skip.",
		"ask_location":        "Send the property location or press Skip.",
		"ask_photos":          "Send up to 10 photos, then press Done.",
		"btn_skip":            "Skip",
		"btn_done":            "Done",
		"invalid_input":       "That input is not valid here, try again.",
		"invalid_number":      "Digits only, please.",
		"invalid_license":     "The license number must be 7 to 12 digits.",
		"invalid_deed":        "The deed number must be 5 to 20 digits, or press Skip.",
		"submitted":           "Listing #%d received; it is now pending review.",
		"submit_failed":       "Could not save the listing, send \"Done\" again.",
		"cancelled":           "Conversation cancelled.",
		"approved_notice":     "Your listing #%d was approved and published to the channel.",
		"rejected_notice":     "Sorry, your listing #%d was rejected.\nReason: %s",
		"no_listings":         "You have no listings yet. Use /new to submit one.",
		"reason_unspecified":  "not specified",
	},
}
