package server

import (
	"context"
	"math/big"
	"time"

	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	"github.com/revolutionchain/ethfmt/pkg/formatting"
)

var ErrNodeUnreachable = errors.New("node is not answering")
var ErrBlockSyncingSeemsStalled = errors.New("Block syncing seems stalled")
var ErrLostLotsOfBlocks = errors.New("Lost a lot of blocks, expected block height to be higher")
var ErrLostFewBlocks = errors.New("Lost a few blocks, expected block height to be higher")

const healthCheckTimeout = 10 * time.Second

func (s *Server) testConnectionToNode() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	outcome, err := s.node.Send(ctx, eth.MethodChainId, nil)
	if err != nil {
		s.logger.Log("liveness", "eth_chainId request failed", "err", err)
		return errors.Wrap(ErrNodeUnreachable, err.Error())
	}
	if outcome.State() == eth.StateError {
		s.logger.Log("liveness", "eth_chainId returned an error", "err", outcome.Error)
		return errors.Wrap(ErrNodeUnreachable, outcome.Error.Error())
	}
	return nil
}

func (s *Server) currentBlock() (*big.Int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	outcome, err := s.node.Send(ctx, eth.MethodBlockNumber, nil)
	if err != nil {
		return nil, err
	}
	if outcome.State() == eth.StateError {
		return nil, outcome.Error
	}
	n, err := formatting.HexToInteger(outcome.Result)
	if err != nil {
		return nil, err
	}
	return n.(*big.Int), nil
}

func (s *Server) testBlocksSyncing() error {
	s.blocksMutex.RLock()
	nextBlockCheck := s.nextBlockCheck
	lastBlockStatus := s.lastBlockStatus
	s.blocksMutex.RUnlock()
	now := s.now()
	if nextBlockCheck == nil {
		nextBlockCheckTime := now.Add(-30 * time.Minute)
		nextBlockCheck = &nextBlockCheckTime
	}
	if nextBlockCheck.After(now) {
		if lastBlockStatus != nil {
			s.logger.Log("liveness", "blocks syncing", "err", lastBlockStatus)
		}
		return lastBlockStatus
	}
	s.blocksMutex.Lock()
	if s.nextBlockCheck != nil && nextBlockCheck != s.nextBlockCheck {
		// multiple threads were waiting on write lock
		s.blocksMutex.Unlock()
		return s.testBlocksSyncing()
	}
	defer s.blocksMutex.Unlock()

	blockNumber, err := s.currentBlock()
	if err != nil {
		s.logger.Log("liveness", "eth_blockNumber request failed", "err", err)
		return err
	}
	blocks := blockNumber.Int64()

	nextBlockCheckTime := now.Add(5 * time.Minute)
	s.nextBlockCheck = &nextBlockCheckTime

	if blocks == s.lastBlock {
		// stalled
		nextBlockCheckTime = now.Add(15 * time.Second)
		s.nextBlockCheck = &nextBlockCheckTime
		s.lastBlockStatus = ErrBlockSyncingSeemsStalled
	} else if blocks < s.lastBlock {
		if s.lastBlock-blocks > 10 {
			// lost a lot of blocks, probably a real problem
			s.lastBlock = 0
			nextBlockCheckTime = now.Add(60 * time.Second)
			s.nextBlockCheck = &nextBlockCheckTime
			s.logger.Log("liveness", "Lost lots of blocks")
			s.lastBlockStatus = ErrLostLotsOfBlocks
		} else {
			// could be nodes out of sync behind a load balancer
			nextBlockCheckTime = now.Add(10 * time.Second)
			s.nextBlockCheck = &nextBlockCheckTime
			s.logger.Log("liveness", "Lost a few blocks")
			s.lastBlockStatus = ErrLostFewBlocks
		}
	} else {
		s.lastBlock = blocks
		nextBlockCheckTime = now.Add(90 * time.Second)
		s.nextBlockCheck = &nextBlockCheckTime
		s.lastBlockStatus = nil
	}

	return s.lastBlockStatus
}

func (s *Server) testFormattingSuccessRate() error {
	if s.analytics == nil {
		return nil
	}
	minimumSuccessRate := float32(s.healthCheckPercent) / 100
	successRate := s.analytics.GetSuccessRate()

	if successRate < minimumSuccessRate {
		s.logger.Log("readiness", "formatted call success rate is low", "rate", successRate)
		return errors.Errorf("formatted call success rate is %f<%f", successRate, minimumSuccessRate)
	}
	return nil
}
