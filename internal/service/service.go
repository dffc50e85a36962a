// Package service 애플리케이션을 구성하는 장기 실행 서비스의 공통 생명주기를 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service 백그라운드에서 실행되는 서비스입니다.
//
// Start는 즉시 반환되어야 하며, 서비스는 ctx가 취소되면 스스로 정리를 마친 뒤 wg.Done()을 호출합니다.
// 호출자는 Start 전에 wg.Add(1)을 호출하며, Start가 에러를 반환하거나 이미 실행 중이어서
// 아무것도 하지 않을 때도 wg.Done()은 반드시 한 번 호출됩니다.
type Service interface {
	Start(ctx context.Context, wg *sync.WaitGroup) error
}
