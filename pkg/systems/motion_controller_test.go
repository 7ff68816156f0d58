package systems

import (
	"math"
	"testing"

	"github.com/decker502/rocket/pkg/components"
)

// TestMotionController_Step 测试各阶段的单帧运动
func TestMotionController_Step(t *testing.T) {
	mc := NewMotionController(newTestConfig(true))

	tests := []struct {
		name   string
		phase  components.FlightPhase
		wantDY float64
	}{
		{"Idle 不动", components.PhaseIdle, 0},
		{"Preparing 下沉", components.PhasePreparing, 2},
		{"Shooting 快速上升", components.PhaseShooting, -8},
		{"Flying 减速上升", components.PhaseFlying, -4},
		{"Exploding 不动", components.PhaseExploding, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := mc.Step(tt.phase, 1.234, testDT)
			if math.Abs(step.DY-tt.wantDY) > 1e-9 {
				t.Errorf("DY = %.6f, want %.6f", step.DY, tt.wantDY)
			}
			if !tt.phase.IsAirborne() && (step.DX != 0 || step.Rotation != 0) {
				t.Errorf("non-airborne phase should not move, got %+v", step)
			}
		})
	}
}

// TestMotionController_StepScalesWithDT 线性位移按 dt 缩放，旋转不缩放
func TestMotionController_StepScalesWithDT(t *testing.T) {
	mc := NewMotionController(newTestConfig(false))

	at60 := mc.Step(components.PhaseShooting, 0.5, 1.0/60.0)
	at30 := mc.Step(components.PhaseShooting, 0.5, 1.0/30.0)

	if math.Abs(at30.DY-2*at60.DY) > 1e-9 {
		t.Errorf("DY at 30Hz = %.4f, want 2x %.4f", at30.DY, at60.DY)
	}
	if math.Abs(at30.DX-2*at60.DX) > 1e-9 {
		t.Errorf("DX at 30Hz = %.4f, want 2x %.4f", at30.DX, at60.DX)
	}
	if at30.Rotation != at60.Rotation {
		t.Errorf("rotation depends only on clock, got %.4f vs %.4f", at30.Rotation, at60.Rotation)
	}

	if zero := mc.Step(components.PhaseShooting, 0.5, 0); zero != (MotionStep{}) {
		t.Errorf("dt=0 should not move, got %+v", zero)
	}
}

// TestMotionController_WobbleBounded 摆动不超过配置的振幅
func TestMotionController_WobbleBounded(t *testing.T) {
	cfg := newTestConfig(true)
	mc := NewMotionController(cfg)

	for i := 0; i < 600; i++ {
		clock := float64(i) * testDT
		step := mc.Step(components.PhaseFlying, clock, testDT)
		if math.Abs(step.Rotation) > cfg.Motion.Flying.WobbleAmplitude+1e-12 {
			t.Fatalf("rotation %.4f exceeds amplitude at clock %.3f", step.Rotation, clock)
		}
		if math.Abs(step.DX) > cfg.Motion.Flying.SwayAmplitude+1e-12 {
			t.Fatalf("sway %.4f exceeds amplitude at clock %.3f", step.DX, clock)
		}
	}
}

// TestMotionController_NextPhase 测试自动转换谓词（边界值包含在内）
func TestMotionController_NextPhase(t *testing.T) {
	mc := NewMotionController(newTestConfig(true))

	tests := []struct {
		name   string
		phase  components.FlightPhase
		y      float64
		want   components.FlightPhase
		wantOK bool
	}{
		{"Preparing 未到底", components.PhasePreparing, 499, components.PhasePreparing, false},
		{"Preparing 到底", components.PhasePreparing, 500, components.PhaseShooting, true},
		{"Shooting 未过中线", components.PhaseShooting, 300.5, components.PhaseShooting, false},
		{"Shooting 到达中线", components.PhaseShooting, 300, components.PhaseFlying, true},
		{"Flying 未到顶", components.PhaseFlying, 51, components.PhaseFlying, false},
		{"Flying 到顶", components.PhaseFlying, 50, components.PhaseExploding, true},
		{"Idle 不转换", components.PhaseIdle, 0, components.PhaseIdle, false},
		{"Exploding 不转换", components.PhaseExploding, 0, components.PhaseExploding, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := mc.NextPhase(tt.phase, tt.y, 600)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NextPhase(%s, %.1f) = (%s, %v), want (%s, %v)", tt.phase, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
