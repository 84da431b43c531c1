package systems

import (
	"testing"

	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/dream-sky2020/divinebloom/shared/logger"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/dream-sky2020/divinebloom/tags"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func addHealth(w donburi.World, hp, max int, labels ...string) *donburi.Entry {
	e := addDetectable(w, 0, 0, labels...)
	store.AddComponent(e, components.Health, components.HealthData{Current: hp, Max: max})
	return e
}

func hit(w donburi.World, target *donburi.Entry, amount int) {
	global(w).Damage.Push(events.DamageEvent{Target: target.Entity(), Amount: amount})
}

func TestDamageAppliesOnlyInExecution(t *testing.T) {
	w := newWorld(t)
	target := addHealth(w, 100, 100)

	hit(w, target, 10)
	hit(w, target, 15)
	run(w, UpdateInputDetect, UpdateDetection, UpdateTriggers, UpdatePerception, UpdateAI, UpdatePhysics)
	assert.Equal(t, 100, components.Health.Get(target).Current)

	NewExecution(nil, nil)(w)
	assert.Equal(t, 75, components.Health.Get(target).Current)
	assert.Zero(t, global(w).Damage.Len())
}

func TestDamageOrderDoesNotMatter(t *testing.T) {
	w := newWorld(t)
	a := addHealth(w, 50, 50)
	b := addHealth(w, 50, 50)
	amounts := []int{7, -3, 12, 1}

	for _, n := range amounts {
		hit(w, a, n)
	}
	for i := len(amounts) - 1; i >= 0; i-- {
		hit(w, b, amounts[i])
	}
	UpdateCombat(w)

	assert.Equal(t, 33, components.Health.Get(a).Current)
	assert.Equal(t, components.Health.Get(a).Current, components.Health.Get(b).Current)
}

func TestDamageQueueOverflowIsLogged(t *testing.T) {
	w := newWorld(t)
	hook := logtest.NewLocal(logger.Log)
	defer hook.Reset()

	g := global(w)
	g.Damage = events.NewDamageQueue(2)
	target := addHealth(w, 100, 100)

	ev := events.DamageEvent{Target: target.Entity(), Amount: 1}
	assert.True(t, g.Damage.Push(ev))
	assert.True(t, g.Damage.Push(ev))
	assert.False(t, g.Damage.Push(ev))

	UpdateCombat(w)

	assert.Equal(t, 98, components.Health.Get(target).Current)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Damage queue full, events dropped", hook.LastEntry().Message)
	assert.Equal(t, 1, hook.LastEntry().Data["dropped"])
}

func TestHealthClamps(t *testing.T) {
	w := newWorld(t)
	player := addHealth(w, 5, 10, tags.LabelPlayer)
	player.AddComponent(tags.Player)
	healed := addHealth(w, 8, 10)

	hit(w, player, 50)
	hit(w, healed, -20)
	UpdateCombat(w)

	require.True(t, player.Valid(), "a defeated player is kept")
	assert.Equal(t, 0, components.Health.Get(player).Current)
	assert.Equal(t, 10, components.Health.Get(healed).Current)
}

func TestDefeatedEntityIsDestroyed(t *testing.T) {
	w := newWorld(t)
	target := addHealth(w, 3, 10)
	sensor := addArea(w, 0, 0, geom.Circle(5), "player")
	require.NoError(t, Attach(w, target, sensor, components.RoleSensor, components.LocalTransformData{}))
	bystander := addHealth(w, 3, 10)

	hit(w, target, 3)
	UpdateCombat(w)

	assert.False(t, w.Valid(target.Entity()))
	assert.False(t, w.Valid(sensor.Entity()))
	assert.True(t, bystander.Valid())
}

func TestDamageToVanishedTargetIsIgnored(t *testing.T) {
	w := newWorld(t)
	target := addHealth(w, 10, 10)
	hit(w, target, 4)
	Destroy(w, target.Entity())

	assert.NotPanics(t, func() { UpdateCombat(w) })
}

func TestHitterHitsOnEntryOnly(t *testing.T) {
	w := newWorld(t)
	hazard := addArea(w, 0, 0, geom.Circle(10), "damageable")
	store.AddComponent(hazard, components.Hitter, components.HitterData{Damage: 2})
	target := addHealth(w, 20, 20, "damageable")

	tick := func() {
		run(w, UpdateDetection, UpdateHitDetection, UpdateCombat)
	}

	for i := 0; i < 5; i++ {
		tick()
	}
	assert.Equal(t, 18, components.Health.Get(target).Current)

	moveTo(target, 100, 100)
	tick()
	moveTo(target, 0, 0)
	tick()
	assert.Equal(t, 16, components.Health.Get(target).Current)
}

func TestHitterCreditsOwner(t *testing.T) {
	w := newWorld(t)
	owner := addDetectable(w, 500, 500, "enemy")
	blade := addArea(w, 0, 0, geom.Circle(10), "damageable")
	store.AddComponent(blade, components.Hitter, components.HitterData{Owner: owner.Entity(), Damage: 1})
	addHealth(w, 5, 5, "damageable")

	run(w, UpdateDetection, UpdateHitDetection)

	evs := global(w).Damage.Drain()
	require.Len(t, evs, 1)
	assert.Equal(t, owner.Entity(), evs[0].Source)
}
