package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeScript(t *testing.T, dir, sub, name, src string) {
	t.Helper()
	p := filepath.Join(dir, sub)
	require.NoError(t, os.MkdirAll(p, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(p, name), []byte(src), 0o644))
}

func TestMissingHooksFallBack(t *testing.T) {
	e, err := NewEngine(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 3, e.AbilityModifier("strength", 16))
	assert.True(t, e.Interact(InteractContext{}).OK)
	assert.Equal(t, 1, e.LevelUpHP(1, -3))
	assert.False(t, e.Has("on_interact"))
}

func TestAbilityModifierOverride(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "rules", "mod.lua", `
function ability_modifier(ability, score)
  if ability == "strength" then return math.floor((score - 10) / 2) end
  return 0
end`)
	e, err := NewEngine(dir, nil)
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 4, e.AbilityModifier("strength", 18))
	assert.Equal(t, 0, e.AbilityModifier("wisdom", 18))
}

func TestAbilityModifierErrorLogsAndFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "rules", "bad.lua", `function ability_modifier(a, s) error("nope") end`)
	core, logs := observer.New(zapcore.ErrorLevel)
	e, err := NewEngine(dir, zap.New(core))
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, -1, e.AbilityModifier("strength", 8))
	assert.Equal(t, 1, logs.FilterMessage("lua ability_modifier error").Len())
}

func TestInteractHookShapes(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "interact", "hook.lua", `
function on_interact(ctx)
  if ctx.target_name == "lever" then
    return { ok = true, message = "click" }
  end
  if ctx.uses > 0 then return false end
  return true
end`)
	e, err := NewEngine(dir, nil)
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, InteractResult{OK: true, Message: "click"}, e.Interact(InteractContext{TargetName: "lever"}))
	assert.Equal(t, InteractResult{OK: true}, e.Interact(InteractContext{}))
	assert.Equal(t, InteractResult{OK: false}, e.Interact(InteractContext{Uses: 1}))
}

func TestSyntaxErrorFailsLoad(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core", "broken.lua", `function (`)
	_, err := NewEngine(dir, nil)
	assert.Error(t, err)
}

func TestLevelUpHPHook(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "rules", "hp.lua", `function level_up_hp(roll, con) return roll * 2 + con end`)
	e, err := NewEngine(dir, nil)
	require.NoError(t, err)
	defer e.Close()
	assert.Equal(t, 9, e.LevelUpHP(4, 1))
}
