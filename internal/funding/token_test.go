package funding

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardTokenMinterAuthorization(t *testing.T) {
	token := NewRewardToken()

	// 未设置铸造者之前不可铸造
	err := token.Mint(engineAddr, contributor, big.NewInt(100))
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, token.SetMinter(engineAddr))

	// 铸造者只能设置一次
	err = token.SetMinter(other)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// 非铸造者不可铸造
	err = token.Mint(other, contributor, big.NewInt(100))
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, token.BalanceOf(contributor).Sign())

	require.NoError(t, token.Mint(engineAddr, contributor, big.NewInt(100)))
	require.NoError(t, token.Mint(engineAddr, contributor, big.NewInt(50)))
	assert.Zero(t, token.BalanceOf(contributor).Cmp(big.NewInt(150)))
}

func TestCategoryParsing(t *testing.T) {
	for i, name := range []string{"Research", "Hackathon", "Startup", "Event"} {
		c, ok := ParseCategory(name)
		require.True(t, ok)
		assert.Equal(t, Category(i), c)
		assert.Equal(t, name, c.String())
		assert.True(t, c.Valid())
	}

	_, ok := ParseCategory("Gaming")
	assert.False(t, ok)
	assert.False(t, Category(4).Valid())
	assert.Equal(t, "Unknown", Category(9).String())
}
