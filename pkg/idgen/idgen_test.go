package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/anheyu-interact/pkg/constant"
)

func TestPublicIDRoundTripWithSeed(t *testing.T) {
	require.NoError(t, InitSqidsEncoderWithSeed("anheyu-test-seed"))

	publicID, err := GeneratePublicID(42, EntityTypeUser)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(publicID), 4)

	id, err := DecodePublicIDOfType(publicID, EntityTypeUser)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	_, err = DecodePublicIDOfType(publicID, EntityTypeComment)
	assert.ErrorIs(t, err, constant.ErrInvalidPublicID)
}

func TestCodecSeeds(t *testing.T) {
	plain, err := NewCodec("")
	require.NoError(t, err)
	seeded, err := NewCodec("site-a")
	require.NoError(t, err)
	again, err := NewCodec("site-a")
	require.NoError(t, err)

	a, _ := plain.Encode(7, EntityTypeComment)
	b, _ := seeded.Encode(7, EntityTypeComment)
	c, _ := again.Encode(7, EntityTypeComment)
	assert.NotEqual(t, a, b, "不同种子得到不同的公共ID")
	assert.Equal(t, b, c, "相同种子结果确定")

	_, err = seeded.Decode("!!", EntityTypeComment)
	assert.ErrorIs(t, err, constant.ErrInvalidPublicID)
}
