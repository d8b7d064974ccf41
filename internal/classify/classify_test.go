package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testClassifier() *Classifier {
	return NewClassifier(
		[]string{"سيارة", "وظيفة", "crypto", "Job"},
		[]string{"جدة", "الدمام", "Jeddah", "dammam"},
	)
}

func TestHasLicenseToken(t *testing.T) {
	assert := assert.New(t)
	c := testClassifier()

	// Labeled patterns
	assert.True(c.HasLicenseToken("شقة للإيجار رخصة فال: 1234567"))
	assert.True(c.HasLicenseToken("License 7654321 villa in Olaya"))
	assert.True(c.HasLicenseToken("deed#98765"))
	assert.True(c.HasLicenseToken("ترخيص-123456789012"))

	// Bare digit-run fallback (9-12 digits)
	assert.True(c.HasLicenseToken("contact after seeing 123456789"))
	assert.True(c.HasLicenseToken("ad 123456789012 end"))
	// Known-loose: an unrelated phone number of that length also matches
	assert.True(c.HasLicenseToken("call 0501234567"))

	// Too short / absent
	assert.False(c.HasLicenseToken("villa for rent in Olaya 12345678"))
	assert.False(c.HasLicenseToken("no numbers at all"))
	assert.False(c.HasLicenseToken(""))
}

func TestIsOffTopic(t *testing.T) {
	assert := assert.New(t)
	c := testClassifier()

	assert.True(c.IsOffTopic("سيارة للبيع موديل 2020"))
	assert.True(c.IsOffTopic("Looking for a JOB in Riyadh"))
	assert.True(c.IsOffTopic("buy CRYPTO now"))
	assert.False(c.IsOffTopic("شقة ثلاث غرف للإيجار"))
	assert.False(c.IsOffTopic(""))
}

func TestMentionsExcludedCity(t *testing.T) {
	assert := assert.New(t)
	c := testClassifier()

	assert.True(c.MentionsExcludedCity("فيلا في جدة حي الصفا"))
	assert.True(c.MentionsExcludedCity("apartment in JEDDAH for rent"))
	assert.True(c.MentionsExcludedCity("أرض في الدمام"))
	assert.False(c.MentionsExcludedCity("شقة في الرياض حي النرجس"))
}

func TestChecksAreIndependent(t *testing.T) {
	assert := assert.New(t)
	c := testClassifier()

	// One message can trip several checks at once.
	text := "سيارة للبيع في جدة رخصة 1234567"
	assert.True(c.IsOffTopic(text))
	assert.True(c.MentionsExcludedCity(text))
	assert.True(c.HasLicenseToken(text))
}
