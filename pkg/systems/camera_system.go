package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/components"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/ecs"
	"github.com/gonewx/ascent/pkg/utils"
)

// minPolar 防止相机正好位于轨道中心正上方时 LookAt 退化
const minPolar = 1e-6

// CameraSystem 带阻尼的轨道相机
//
// 拖动与滚轮只累积增量，Update 中按阻尼系数逐帧释放；
// 控制启用时轨道中心以 FollowLerp 的比例追随角色头顶。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	camera        ecs.EntityID
	cfg           config.CameraConfig
}

// NewCameraSystem 创建相机系统
func NewCameraSystem(em *ecs.EntityManager, camera ecs.EntityID, cfg config.CameraConfig) *CameraSystem {
	return &CameraSystem{entityManager: em, camera: camera, cfg: cfg}
}

// Camera 返回相机组件；不存在时返回 nil
func (s *CameraSystem) Camera() *components.CameraComponent {
	cam, ok := ecs.GetComponent[*components.CameraComponent](s.entityManager, s.camera)
	if !ok {
		return nil
	}
	return cam
}

// SetEnabled 启用或禁用轨道控制与跟随
func (s *CameraSystem) SetEnabled(enabled bool) {
	if cam := s.Camera(); cam != nil {
		cam.Enabled = enabled
	}
}

// SetAspect 视口尺寸变化后更新宽高比
func (s *CameraSystem) SetAspect(aspect float64) {
	if cam := s.Camera(); cam != nil && aspect > 0 {
		cam.Aspect = aspect
	}
}

// Orbit 按指针位移累积旋转增量
//
// 参数:
//   - dx, dy: 指针位移（像素）
//   - viewportHeight: 视口高度，拖动一整个视口高度旋转 2π
//   - sensitivity: 用户设置中的灵敏度倍数
func (s *CameraSystem) Orbit(dx, dy, viewportHeight, sensitivity float64) {
	cam := s.Camera()
	if cam == nil || !cam.Enabled || viewportHeight <= 0 {
		return
	}
	k := 2 * math.Pi * s.cfg.RotateSpeed * sensitivity / viewportHeight
	cam.DeltaTheta -= dx * k
	cam.DeltaPhi -= dy * k
}

// Zoom 按滚轮累积缩放；wheel > 0 拉近
func (s *CameraSystem) Zoom(wheel float64) {
	cam := s.Camera()
	if cam == nil || !cam.Enabled || wheel == 0 {
		return
	}
	step := math.Pow(0.95, s.cfg.ZoomSpeed*math.Abs(wheel))
	if wheel > 0 {
		cam.ZoomScale *= step
	} else {
		cam.ZoomScale /= step
	}
}

// Update 推进一帧
//
// 参数:
//   - follow: 角色位置；控制启用时轨道中心向 follow + (0, FollowOffset, 0) 靠近
func (s *CameraSystem) Update(follow mgl64.Vec3) {
	cam := s.Camera()
	if cam == nil {
		return
	}

	if cam.Enabled {
		goal := follow.Add(mgl64.Vec3{0, s.cfg.FollowOffset, 0})
		cam.Target = utils.LerpVec3(cam.Target, goal, s.cfg.FollowLerp)
	}

	damping := s.cfg.Damping
	cam.Theta += cam.DeltaTheta * damping
	cam.Phi += cam.DeltaPhi * damping
	cam.Phi = math.Max(minPolar, math.Min(math.Pi/2-s.cfg.PolarMargin, cam.Phi))

	cam.Radius *= cam.ZoomScale
	cam.Radius = math.Max(s.cfg.MinDistance, math.Min(s.cfg.MaxDistance, cam.Radius))

	cam.DeltaTheta *= 1 - damping
	cam.DeltaPhi *= 1 - damping
	cam.ZoomScale = 1
}

// ViewProjection 返回投影矩阵 × 视图矩阵以及相机位置
func (s *CameraSystem) ViewProjection() (mgl64.Mat4, mgl64.Vec3) {
	cam := s.Camera()
	if cam == nil {
		return mgl64.Ident4(), mgl64.Vec3{}
	}
	return ViewProjection(cam), cam.Eye()
}

// ViewProjection 根据相机组件计算投影 × 视图矩阵
func ViewProjection(cam *components.CameraComponent) mgl64.Mat4 {
	aspect := cam.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	proj := mgl64.Perspective(mgl64.DegToRad(cam.FOV), aspect, cam.Near, cam.Far)
	view := mgl64.LookAtV(cam.Eye(), cam.Target, mgl64.Vec3{0, 1, 0})
	return proj.Mul4(view)
}
