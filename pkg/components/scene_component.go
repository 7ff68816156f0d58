package components

// SceneComponent 场景容器状态
//
// 保存宿主窗口报告的视口尺寸和场景整体偏移（镜头抖动写入这里）。
// 渲染外壳绘制所有对象时都加上 OffsetX/OffsetY。
type SceneComponent struct {
	Width  float64
	Height float64

	OffsetX float64
	OffsetY float64
}
