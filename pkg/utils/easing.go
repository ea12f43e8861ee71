package utils

import "math"

// EaseOutCubic 三次方缓出，t ∈ [0, 1]
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// FadeOut 返回倒计时剩余 remaining 帧时的不透明度
// 最后 fadeFrames 帧内按 EaseOutCubic 从 1 淡到 0，之前保持 1
func FadeOut(remaining, fadeFrames int) float64 {
	switch {
	case remaining <= 0:
		return 0
	case fadeFrames <= 0 || remaining >= fadeFrames:
		return 1
	}
	return EaseOutCubic(float64(remaining) / float64(fadeFrames))
}
