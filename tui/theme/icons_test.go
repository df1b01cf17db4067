package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIconSets(t *testing.T) {
	t.Cleanup(func() { SetASCII(false) })

	for _, ascii := range []bool{false, true} {
		SetASCII(ascii)
		icons := map[string]string{
			"success": IconSuccess, "error": IconError, "warning": IconWarning,
			"info": IconInfo, "running": IconRunning, "pending": IconPending,
			"select": IconSelect, "unchecked": IconUnchecked, "arrow": IconArrow,
			"bullet": IconBullet, "filter": IconFilter, "trophy": IconTrophy,
			"bolt": IconBolt, "document": IconDocument, "robot": IconRobot,
			"server": IconServer,
		}
		seen := map[string]string{}
		for name, icon := range icons {
			assert.NotEmpty(t, icon, "icon %s (ascii=%v)", name, ascii)
			if other, dup := seen[icon]; dup {
				t.Errorf("icons %s and %s share %q (ascii=%v)", name, other, icon, ascii)
			}
			seen[icon] = name
		}
	}

	SetASCII(false)
	assert.Equal(t, "\uF091", IconTrophy)
	assert.Equal(t, "\U000F012C", IconSuccess)
}
