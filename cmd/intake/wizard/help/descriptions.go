package help

// HelpText contains information about a field
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts contains help information for the demographics fields
var Texts = map[string]HelpText{
	"living_with": {
		Title:       "وضعیت زندگی",
		Description: "کودک در حال حاضر با چه کسانی زندگی می‌کند؟",
		Details:     "بر اساس این پاسخ، سوال‌های مربوط به پدر و مادر نمایش داده می‌شوند.",
	},
	"province": {
		Title:       "استان",
		Description: "استان محل سکونت خانواده.",
		Details:     "نام استان را کامل بنویسید، مثلا «تهران» یا «خراسان رضوی».",
	},
	"city": {
		Title:       "شهر",
		Description: "شهر محل سکونت خانواده.",
		Details:     "نام شهر یا شهرستان محل زندگی فعلی.",
	},
	"marital_status": {
		Title:       "وضعیت تاهل والدین",
		Description: "وضعیت فعلی زندگی مشترک والدین کودک.",
		Details:     "این اطلاعات محرمانه است و فقط برای جمع‌بندی گزارش استفاده می‌شود.",
	},
	"father_age": {
		Title:       "سن پدر",
		Description: "سن پدر به سال.",
		Details:     "فقط عدد وارد کنید، مثلا 42.",
	},
	"father_education": {
		Title:       "تحصیلات پدر",
		Description: "آخرین مدرک تحصیلی پدر.",
		Details:     "نزدیک‌ترین گزینه را انتخاب کنید.",
	},
	"father_occupation": {
		Title:       "شغل پدر",
		Description: "شغل فعلی پدر.",
		Details:     "اگر شاغل نیست، «بیکار» یا «بازنشسته» بنویسید.",
	},
	"mother_age": {
		Title:       "سن مادر",
		Description: "سن مادر به سال.",
		Details:     "فقط عدد وارد کنید، مثلا 38.",
	},
	"mother_education": {
		Title:       "تحصیلات مادر",
		Description: "آخرین مدرک تحصیلی مادر.",
		Details:     "نزدیک‌ترین گزینه را انتخاب کنید.",
	},
	"mother_occupation": {
		Title:       "شغل مادر",
		Description: "شغل فعلی مادر.",
		Details:     "اگر شاغل نیست، «خانه‌دار» یا «بازنشسته» بنویسید.",
	},
}
